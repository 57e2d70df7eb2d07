package store

import (
	"context"
	"fmt"
	"time"
)

func (s *SQLiteStore) AppendFeedback(ctx context.Context, fb *Feedback) error {
	fb.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO feedback (user_id, rating, comment, created_at) VALUES (?, ?, ?, ?)",
		fb.UserID, fb.Rating, fb.Comment, fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	fb.ID, _ = res.LastInsertId()
	return nil
}

// ListFeedback returns the newest feedback first.
func (s *SQLiteStore) ListFeedback(ctx context.Context, userID int64) ([]Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, rating, comment, created_at
        FROM feedback WHERE user_id = ?
        ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var feedback []Feedback
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		feedback = append(feedback, fb)
	}
	return feedback, rows.Err()
}
