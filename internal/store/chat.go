package store

import (
	"context"
	"fmt"
	"time"
)

func (s *SQLiteStore) AppendChatMessage(ctx context.Context, msg *ChatMessage) error {
	msg.CreatedAt = time.Now().UTC()

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO chat_history (user_id, sender, message, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chat message insert: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, msg.UserID, msg.Sender, msg.Text, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute chat message insert: %w", err)
	}
	msg.ID, _ = res.LastInsertId()
	return nil
}

// ListChatHistory returns the conversation in chronological order. When
// limit > 0 only the last limit messages are returned.
func (s *SQLiteStore) ListChatHistory(ctx context.Context, userID int64, limit int) ([]ChatMessage, error) {
	query := `
        SELECT id, user_id, sender, message, created_at FROM (
            SELECT id, user_id, sender, message, created_at
            FROM chat_history
            WHERE user_id = ?
            ORDER BY id DESC
            LIMIT ?
        ) ORDER BY id ASC
    `
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var messages []ChatMessage
	for rows.Next() {
		var msg ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Sender, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
