package store

import (
	"context"
	"fmt"
	"time"
)

func (s *SQLiteStore) CreateGoal(ctx context.Context, g *Goal) error {
	g.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO goal (user_id, description, value, priority, target_date, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Description, money(g.Target), g.Priority, day(g.TargetDate), g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	g.ID, _ = res.LastInsertId()
	return nil
}

// ListGoals returns the most recently created goals first.
func (s *SQLiteStore) ListGoals(ctx context.Context, userID int64) ([]Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, description, value, priority, target_date, created_at
        FROM goal WHERE user_id = ?
        ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		var target string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &g.Target, &g.Priority, &target, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		if g.TargetDate, err = parseDay(target); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
