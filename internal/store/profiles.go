package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func (s *SQLiteStore) CreateProfile(ctx context.Context, p *Profile) error {
	p.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO onboarding (user_id, remuneration, is_negative, has_dependents, knowledge_level, main_goal, is_ready, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, money(p.MonthlyIncome), p.NegativeCredit, p.HasDependents, p.KnowledgeLevel, p.MainGoal, p.Readiness, p.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// GetProfile returns nil, nil when the user has not finished onboarding.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
        SELECT id, user_id, remuneration, is_negative, has_dependents, knowledge_level, main_goal, is_ready, created_at
        FROM onboarding WHERE user_id = ?`, userID).
		Scan(&p.ID, &p.UserID, &p.MonthlyIncome, &p.NegativeCredit, &p.HasDependents, &p.KnowledgeLevel, &p.MainGoal, &p.Readiness, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return &p, nil
}
