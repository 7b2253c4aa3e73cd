// Package storage provides abstractions for the trip collection.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a trip, participant or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping backends (in-process memory, in-memory SQLite)
// without changing the ledger.
//
// Implementations keep participants and expenses in insertion order and are safe
// for concurrent use.
type Store interface {
	// CreateTrip persists a new trip.
	// trip.ID and trip.CreatedAt are populated by the store when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with all of its participants and expenses.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips retrieves every trip in creation order.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// DeleteTrip removes a trip together with everything it owns.
	DeleteTrip(ctx context.Context, tripID string) error

	// UpdateTripCurrency replaces the currency code of a trip.
	UpdateTripCurrency(ctx context.Context, tripID, currency string) error

	// AddParticipant appends a participant to a trip.
	// p.ID is populated by the store when empty.
	AddParticipant(ctx context.Context, tripID string, p *models.Participant) error

	// RemoveParticipant removes a participant and, atomically, every expense they paid.
	// Returns the number of expenses removed with them.
	RemoveParticipant(ctx context.Context, tripID, participantID string) (int, error)

	// AddExpense appends an expense to a trip.
	// e.ID and e.CreatedAt are populated by the store when empty.
	AddExpense(ctx context.Context, tripID string, e *models.Expense) error

	// RemoveExpense removes a single expense.
	RemoveExpense(ctx context.Context, tripID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
