package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"utfpr.edu.br/menfin/internal/locale"
)

const (
	MsgRequired          = "Campo obrigatório"
	MsgInvalidMoney      = "Valor monetário inválido"
	MsgGreaterThanZero   = "O valor deve ser maior que zero"
	MsgInvalidEmail      = "E-mail inválido"
	MsgLettersOnly       = "Use apenas letras"
	MsgMinLength         = "Mínimo de %d caracteres"
	MsgMaxLength         = "Máximo de %d caracteres"
	MsgPasswordLetterNum = "A senha deve conter letras e números"
	MsgUserTaken         = "Usuário já cadastrado"
	MsgUserNotFound      = "Usuário não encontrado"
	MsgWrongPassword     = "Senha inválida"
	MsgInvalidDate       = "Data inválida"
	MsgInvalidRating     = "Avaliação deve estar entre 1 e 5"
	MsgInvalidOption     = "Opção inválida"
)

var (
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRe = regexp.MustCompile(`[\p{L}]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
)

// Validator returns an empty string when value is acceptable, otherwise the
// message shown next to the field.
type Validator func(value string) string

// Run applies validators in order and returns the first failure.
func Run(value string, validators ...Validator) string {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			return msg
		}
	}
	return ""
}

func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	return ""
}

// The validators below accept blank input and leave it to Required.

func Email(value string) string {
	if strings.TrimSpace(value) == "" || emailRe.MatchString(value) {
		return ""
	}
	return MsgInvalidEmail
}

func LettersOnly(value string) string {
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return MsgLettersOnly
		}
	}
	return ""
}

func MinLength(n int) Validator {
	return func(value string) string {
		if value == "" || len([]rune(value)) >= n {
			return ""
		}
		return fmt.Sprintf(MsgMinLength, n)
	}
}

// MaxBytes bounds the encoded length, which is what bcrypt limits.
func MaxBytes(n int) Validator {
	return func(value string) string {
		if len(value) <= n {
			return ""
		}
		return fmt.Sprintf(MsgMaxLength, n)
	}
}

func PasswordComplexity(value string) string {
	if value == "" || (letterRe.MatchString(value) && digitRe.MatchString(value)) {
		return ""
	}
	return MsgPasswordLetterNum
}

func Money(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if _, err := locale.ParseAmount(value); err != nil {
		return MsgInvalidMoney
	}
	return ""
}

func GreaterThanZero(value string) string {
	amount, err := locale.ParseAmount(value)
	if err != nil {
		return ""
	}
	if !amount.IsPositive() {
		return MsgGreaterThanZero
	}
	return ""
}

func Date(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if _, err := locale.ParseDate(value); err != nil {
		return MsgInvalidDate
	}
	return ""
}

// OneOf wraps an enum parser.
func OneOf[T any](parse func(string) (T, error)) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		if _, err := parse(value); err != nil {
			return MsgInvalidOption
		}
		return ""
	}
}

// Errors collects field-level messages for a form.
type Errors struct {
	Fields map[string]string `json:"fields"`
}

func (e *Errors) Add(field, msg string) {
	if msg == "" {
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// Check runs validators on value and records the first failure under field.
func (e *Errors) Check(field, value string, validators ...Validator) {
	e.Add(field, Run(value, validators...))
}

func (e *Errors) Empty() bool { return len(e.Fields) == 0 }

// Err returns e as an error, or nil when no field failed.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds an Errors with a single message.
func Field(field, msg string) *Errors {
	e := &Errors{}
	e.Add(field, msg)
	return e
}
