package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"utfpr.edu.br/menfin/internal/config"
	"utfpr.edu.br/menfin/internal/prompt"
	"utfpr.edu.br/menfin/internal/store"
)

type QuickQuestion struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

var QuickQuestions = []QuickQuestion{
	{Code: "HOW_TO_SAVE", Text: "Onde posso economizar?"},
	{Code: "BIG_MONTH_EXPENSES", Text: "Qual foi meu maior gasto deste mês?"},
	{Code: "LAUNCH_EXPENSES", Text: "Quanto gastei com alimentação?"},
}

// ResolveQuestion maps a quick-question code to its text. Anything else is
// taken as a free-text question.
func ResolveQuestion(codeOrText string) string {
	for _, q := range QuickQuestions {
		if strings.EqualFold(q.Code, strings.TrimSpace(codeOrText)) {
			return q.Text
		}
	}
	return strings.TrimSpace(codeOrText)
}

type MonthSummary struct {
	MonthTotals
	Insights []string `json:"insights"`
}

type MentorService struct {
	dbStore   RecordStore
	ledger    *LedgerService
	completer Completer
	board     *StateBoard
}

func NewMentorService(db RecordStore, ledger *LedgerService, completer Completer, board *StateBoard) *MentorService {
	return &MentorService{
		dbStore:   db,
		ledger:    ledger,
		completer: completer,
		board:     board,
	}
}

// run wraps one AI-backed operation in the feature's state transitions.
func (s *MentorService) run(ctx context.Context, userID int64, feature Feature, op func(profile store.Profile) error) error {
	if err := s.board.Begin(userID, feature); err != nil {
		return err
	}

	err := func() error {
		profile, err := s.dbStore.GetProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if profile == nil {
			return ErrProfileMissing
		}
		return op(*profile)
	}()

	if err != nil {
		msg := err.Error()
		var mErr *MentorError
		if errors.As(err, &mErr) {
			msg = mErr.Message
		}
		s.board.Fail(userID, feature, msg)
		return err
	}
	s.board.Succeed(userID, feature)
	return nil
}

func (s *MentorService) complete(ctx context.Context, p string) (string, error) {
	if config.AppConfig.Debug() {
		log.Printf("Sending prompt of %d bytes to mentor", len(p))
	}
	return s.completer.Complete(ctx, p)
}

// Ask answers a quick or free-text question from the user's full context.
func (s *MentorService) Ask(ctx context.Context, userID int64, question string) (string, error) {
	question = ResolveQuestion(question)
	var answer string
	err := s.run(ctx, userID, FeatureQuickQuestion, func(profile store.Profile) error {
		transactions, err := s.dbStore.ListTransactions(ctx, userID, nil)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		feedback, err := s.dbStore.ListFeedback(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load feedback: %w", err)
		}

		answer, err = s.complete(ctx, prompt.BuildPrompt(profile, transactions, feedback, question))
		if err != nil {
			log.Printf("Error answering question for user %d: %v", userID, err)
			return answerFailed(err)
		}
		return nil
	})
	return answer, err
}

// GoalInsights asks for 3-4 structured insights tied to the user's goals.
func (s *MentorService) GoalInsights(ctx context.Context, userID int64) ([]Insight, error) {
	var insights []Insight
	err := s.run(ctx, userID, FeatureInsights, func(profile store.Profile) error {
		transactions, err := s.dbStore.ListTransactions(ctx, userID, nil)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		feedback, err := s.dbStore.ListFeedback(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load feedback: %w", err)
		}
		goals, err := s.dbStore.ListGoals(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}

		raw, err := s.complete(ctx, prompt.BuildInsightsPrompt(profile, transactions, feedback, goals))
		if err != nil {
			log.Printf("Error generating insights for user %d: %v", userID, err)
			return &MentorError{Message: MsgInsightsFailed, Err: err}
		}
		insights, err = ParseInsights(raw)
		if err != nil {
			log.Printf("Error parsing insights for user %d: %v", userID, err)
			return &MentorError{Message: MsgInsightsFailed, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return insights, nil
}

// MonthSummary totals the month and asks the mentor for short insights on it.
func (s *MentorService) MonthSummary(ctx context.Context, userID int64, month time.Time) (*MonthSummary, error) {
	var summary *MonthSummary
	err := s.run(ctx, userID, FeatureMonthSummary, func(profile store.Profile) error {
		totals, transactions, err := s.ledger.MonthTotals(ctx, userID, month)
		if err != nil {
			return &MentorError{Message: MsgSummaryFailed, Err: err}
		}
		feedback, err := s.dbStore.ListFeedback(ctx, userID)
		if err != nil {
			return &MentorError{Message: MsgSummaryFailed, Err: err}
		}

		raw, err := s.complete(ctx, prompt.BuildMonthSummaryPrompt(profile, transactions, feedback, totals.Month))
		if err != nil {
			log.Printf("Error generating month summary for user %d: %v", userID, err)
			return &MentorError{Message: MsgSummaryFailed, Err: err}
		}

		insights := ParseSummary(raw)
		if insights == nil {
			insights = []string{}
		}
		summary = &MonthSummary{MonthTotals: *totals, Insights: insights}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *MentorService) State(userID int64, feature Feature) State {
	return s.board.Get(userID, feature)
}
