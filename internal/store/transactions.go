package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const transactionColumns = "id, user_id, type, value, description, category, competence_date, updated_at"

func scanTransaction(row rowScanner) (*Transaction, error) {
	var tx Transaction
	var date string
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.Kind, &tx.Amount, &tx.Description, &tx.Category, &date, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	tx.Date = d
	return &tx, nil
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *Transaction) error {
	tx.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO transaction_entry (user_id, type, value, description, category, competence_date, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.UserID, tx.Kind, money(tx.Amount), tx.Description, tx.Category, day(tx.Date), tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	tx.ID, _ = res.LastInsertId()
	return nil
}

// UpdateTransaction rewrites a transaction owned by tx.UserID.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx *Transaction) error {
	tx.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        UPDATE transaction_entry
        SET type = ?, value = ?, description = ?, category = ?, competence_date = ?, updated_at = ?
        WHERE id = ? AND user_id = ?`,
		tx.Kind, money(tx.Amount), tx.Description, tx.Category, day(tx.Date), tx.UpdatedAt, tx.ID, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, id int64) (*Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transaction_entry WHERE id = ? AND user_id = ?", id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transaction_entry WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTransactions returns the user's transactions, most recent competence
// date first. A non-nil month restricts the result to that calendar month.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID int64, month *time.Time) ([]Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transaction_entry WHERE user_id = ?"
	args := []any{userID}
	if month != nil {
		query += " AND substr(competence_date, 1, 7) = ?"
		args = append(args, month.UTC().Format("2006-01"))
	}
	query += " ORDER BY competence_date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

// FindDuplicateTransaction looks for a transaction of the same user sharing
// kind, amount, description and competence date. It returns nil, nil when
// there is none.
func (s *SQLiteStore) FindDuplicateTransaction(ctx context.Context, userID int64, kind TransactionKind, amount decimal.Decimal, description string, date time.Time) (*Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRowContext(ctx, `
        SELECT `+transactionColumns+` FROM transaction_entry
        WHERE user_id = ? AND type = ? AND value = ? AND description = ? AND competence_date = ?
        LIMIT 1`,
		userID, kind, money(amount), description, day(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query duplicate transaction: %w", err)
	}
	return tx, nil
}
