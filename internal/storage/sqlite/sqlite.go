// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The database always lives in memory: nothing is written to disk and everything is
// gone once the store is closed.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using an in-memory SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// New opens a private in-memory database and runs migrations.
// name identifies the database; an empty name picks a random one.
func New(name string) (*SQLiteStore, error) {
	if name == "" {
		name = uuid.New().String()
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The database exists only as long as a connection is open, so keep exactly one forever.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection, discarding its contents.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip with any participants and expenses it already carries.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, currency, created_at) VALUES (?, ?, ?, ?)",
		trip.ID, trip.Name, trip.Currency, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i := range trip.Participants {
		if err := insertParticipant(ctx, tx, trip.ID, &trip.Participants[i]); err != nil {
			return err
		}
	}
	for i := range trip.Expenses {
		if err := insertExpense(ctx, tx, trip.ID, &trip.Expenses[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID, including participants and expenses in insertion order.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, currency, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Currency, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if trip.Participants, err = s.listParticipants(ctx, tripID); err != nil {
		return nil, err
	}
	if trip.Expenses, err = s.listExpenses(ctx, tripID); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips retrieves every trip in creation order.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM trips ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	// Rows are closed before loading details: the pool holds a single connection.
	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// DeleteTrip removes a trip; foreign keys cascade to participants and expenses.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return expectOneRow(res, "trip", tripID)
}

// UpdateTripCurrency replaces the currency code of a trip.
func (s *SQLiteStore) UpdateTripCurrency(ctx context.Context, tripID, currency string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE trips SET currency = ? WHERE id = ?", currency, tripID)
	if err != nil {
		return fmt.Errorf("failed to update trip currency: %w", err)
	}
	return expectOneRow(res, "trip", tripID)
}

// expectOneRow turns a zero-row statement result into storage.ErrNotFound.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
