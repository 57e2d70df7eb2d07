package core

import (
	"errors"
	"fmt"
)

const (
	MsgProfileMissing  = "Complete seu perfil financeiro antes de conversar com o mentor."
	MsgInsightsFailed  = "Não foi possível gerar os insights agora. Tente novamente."
	MsgSummaryFailed   = "Ocorreu um erro ao obter os dados do mês."
	msgAnswerFailedFmt = "Desculpe, não consegui processar sua pergunta. Tente novamente. (Erro: %s)"
)

// ErrProfileMissing is returned before any prompt is built for a user who has
// not completed onboarding.
var ErrProfileMissing = errors.New(MsgProfileMissing)

// MentorError carries the message shown to the user for a failed AI call.
type MentorError struct {
	Message string
	Err     error
}

func (e *MentorError) Error() string { return e.Message }
func (e *MentorError) Unwrap() error { return e.Err }

func answerFailed(err error) *MentorError {
	return &MentorError{Message: fmt.Sprintf(msgAnswerFailedFmt, err.Error()), Err: err}
}
