package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Birthday     time.Time `json:"birthday"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the onboarding answers of a user. At most one exists per user.
type Profile struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	NegativeCredit YesNo           `json:"negative_credit"`
	HasDependents  YesNo           `json:"has_dependents"`
	KnowledgeLevel KnowledgeLevel  `json:"knowledge_level"`
	MainGoal       string          `json:"main_goal"`
	Readiness      Readiness       `json:"readiness"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Kind        TransactionKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"` // Competence day, UTC midnight
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Goal struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Description string          `json:"description"`
	Target      decimal.Decimal `json:"target"`
	Priority    Priority        `json:"priority"`
	TargetDate  time.Time       `json:"target_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
