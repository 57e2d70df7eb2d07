package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/store"
	"utfpr.edu.br/menfin/internal/validation"
)

const MsgDuplicateTransaction = "Já existe um lançamento com os mesmos dados."

// TransactionRequest is the transaction form as typed by the user. Amount and
// Date use Brazilian formatting.
type TransactionRequest struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

type GoalRequest struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Priority    string `json:"priority"`
	TargetDate  string `json:"target_date"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// MonthTotals sums a calendar month of transactions.
type MonthTotals struct {
	Month    time.Time       `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

type LedgerService struct {
	dbStore RecordStore
}

func NewLedgerService(db RecordStore) *LedgerService {
	return &LedgerService{dbStore: db}
}

func (s *LedgerService) parseTransaction(userID int64, req TransactionRequest) (*store.Transaction, error) {
	var errs validation.Errors
	errs.Check("kind", req.Kind, validation.Required, validation.OneOf(store.ParseTransactionKind))
	errs.Check("amount", req.Amount, validation.Required, validation.Money, validation.GreaterThanZero)
	errs.Check("description", req.Description, validation.Required)
	errs.Check("category", req.Category, validation.Required)
	errs.Check("date", req.Date, validation.Required, validation.Date)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	kind, _ := store.ParseTransactionKind(req.Kind)
	amount, _ := locale.ParseAmount(req.Amount)
	date, _ := locale.ParseDate(req.Date)
	return &store.Transaction{
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		Category:    store.CategoryOrOther(req.Category),
		Date:        date,
	}, nil
}

// checkDuplicate rejects tx when another record of the user shares kind,
// amount, description and date. A record never duplicates itself.
func (s *LedgerService) checkDuplicate(ctx context.Context, tx *store.Transaction) error {
	dup, err := s.dbStore.FindDuplicateTransaction(ctx, tx.UserID, tx.Kind, tx.Amount, tx.Description, tx.Date)
	if err != nil {
		return fmt.Errorf("failed to check duplicate transaction: %w", err)
	}
	if dup != nil && dup.ID != tx.ID {
		return validation.Field("general", MsgDuplicateTransaction)
	}
	return nil
}

func (s *LedgerService) CreateTransaction(ctx context.Context, userID int64, req TransactionRequest) (*store.Transaction, error) {
	tx, err := s.parseTransaction(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.dbStore.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return tx, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, userID, id int64, req TransactionRequest) (*store.Transaction, error) {
	if _, err := s.dbStore.GetTransaction(ctx, userID, id); err != nil {
		return nil, err
	}
	tx, err := s.parseTransaction(userID, req)
	if err != nil {
		return nil, err
	}
	tx.ID = id
	if err := s.checkDuplicate(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.dbStore.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, userID, id int64) (*store.Transaction, error) {
	return s.dbStore.GetTransaction(ctx, userID, id)
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.dbStore.DeleteTransaction(ctx, userID, id)
}

// ListTransactions returns every transaction, or those of month when set.
func (s *LedgerService) ListTransactions(ctx context.Context, userID int64, month *time.Time) ([]store.Transaction, error) {
	if month != nil {
		m := locale.Month(*month)
		month = &m
	}
	return s.dbStore.ListTransactions(ctx, userID, month)
}

func (s *LedgerService) MonthTotals(ctx context.Context, userID int64, month time.Time) (*MonthTotals, []store.Transaction, error) {
	month = locale.Month(month)
	transactions, err := s.dbStore.ListTransactions(ctx, userID, &month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load month transactions: %w", err)
	}
	totals := SumMonth(month, transactions)
	return &totals, transactions, nil
}

// SumMonth adds revenue and expenses; balance is revenue minus expenses.
func SumMonth(month time.Time, transactions []store.Transaction) MonthTotals {
	totals := MonthTotals{Month: month, Revenue: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range transactions {
		if tx.Kind == store.KindRevenue {
			totals.Revenue = totals.Revenue.Add(tx.Amount)
		} else {
			totals.Expenses = totals.Expenses.Add(tx.Amount)
		}
	}
	totals.Balance = totals.Revenue.Sub(totals.Expenses)
	return totals
}

func (s *LedgerService) CreateGoal(ctx context.Context, userID int64, req GoalRequest) (*store.Goal, error) {
	var errs validation.Errors
	errs.Check("description", req.Description, validation.Required)
	errs.Check("target", req.Target, validation.Required, validation.Money, validation.GreaterThanZero)
	errs.Check("priority", req.Priority, validation.Required, validation.OneOf(store.ParsePriority))
	errs.Check("target_date", req.TargetDate, validation.Required, validation.Date)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	target, _ := locale.ParseAmount(req.Target)
	priority, _ := store.ParsePriority(req.Priority)
	date, _ := locale.ParseDate(req.TargetDate)
	goal := &store.Goal{
		UserID:      userID,
		Description: strings.TrimSpace(req.Description),
		Target:      target,
		Priority:    priority,
		TargetDate:  date,
	}
	if err := s.dbStore.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

func (s *LedgerService) ListGoals(ctx context.Context, userID int64) ([]store.Goal, error) {
	return s.dbStore.ListGoals(ctx, userID)
}

func (s *LedgerService) AddFeedback(ctx context.Context, userID int64, req FeedbackRequest) (*store.Feedback, error) {
	var errs validation.Errors
	if req.Rating < 1 || req.Rating > 5 {
		errs.Add("rating", validation.MsgInvalidRating)
	}
	errs.Check("comment", req.Comment, validation.Required)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	fb := &store.Feedback{UserID: userID, Rating: req.Rating, Comment: strings.TrimSpace(req.Comment)}
	if err := s.dbStore.AppendFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return fb, nil
}

func (s *LedgerService) ListFeedback(ctx context.Context, userID int64) ([]store.Feedback, error) {
	return s.dbStore.ListFeedback(ctx, userID)
}
