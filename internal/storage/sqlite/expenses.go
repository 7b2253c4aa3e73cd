package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// AddExpense appends an expense to a trip. The payer check and the insert share one
// transaction, so the payer cannot be removed in between.
func (s *SQLiteStore) AddExpense(ctx context.Context, tripID string, e *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireTrip(ctx, tx, tripID); err != nil {
		return err
	}

	var payers int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM participants WHERE trip_id = ? AND id = ?",
		tripID, e.PaidBy,
	).Scan(&payers)
	if err != nil {
		return fmt.Errorf("failed to check payer: %w", err)
	}
	if payers == 0 {
		return fmt.Errorf("payer %s: %w", e.PaidBy, storage.ErrNotFound)
	}

	if err := insertExpense(ctx, tx, tripID, e); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveExpense removes a single expense.
func (s *SQLiteStore) RemoveExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE trip_id = ? AND id = ?",
		tripID, expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(res, "expense", expenseID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, paid_by, category, created_at
		 FROM expenses WHERE trip_id = ? ORDER BY seq`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaidBy, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func insertExpense(ctx context.Context, db execer, tripID string, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, paid_by, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, tripID, e.Description, e.Amount, e.PaidBy, e.Category, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}
