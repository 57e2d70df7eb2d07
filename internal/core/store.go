package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"utfpr.edu.br/menfin/internal/store"
)

// RecordStore is the persistence the services need. *store.SQLiteStore
// satisfies it.
type RecordStore interface {
	CreateUser(ctx context.Context, user *store.User) error
	GetUserByUsername(ctx context.Context, username string) (*store.User, error)
	GetUserByID(ctx context.Context, id int64) (*store.User, error)

	CreateProfile(ctx context.Context, p *store.Profile) error
	GetProfile(ctx context.Context, userID int64) (*store.Profile, error)

	CreateTransaction(ctx context.Context, tx *store.Transaction) error
	UpdateTransaction(ctx context.Context, tx *store.Transaction) error
	GetTransaction(ctx context.Context, userID, id int64) (*store.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id int64) error
	ListTransactions(ctx context.Context, userID int64, month *time.Time) ([]store.Transaction, error)
	FindDuplicateTransaction(ctx context.Context, userID int64, kind store.TransactionKind, amount decimal.Decimal, description string, date time.Time) (*store.Transaction, error)

	CreateGoal(ctx context.Context, g *store.Goal) error
	ListGoals(ctx context.Context, userID int64) ([]store.Goal, error)

	AppendFeedback(ctx context.Context, fb *store.Feedback) error
	ListFeedback(ctx context.Context, userID int64) ([]store.Feedback, error)

	AppendChatMessage(ctx context.Context, msg *store.ChatMessage) error
	ListChatHistory(ctx context.Context, userID int64, limit int) ([]store.ChatMessage, error)
}

var _ RecordStore = (*store.SQLiteStore)(nil)
