// Package memory provides an in-process implementation of the storage.Store interface.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps trips in a map and remembers creation order separately.
type Store struct {
	mu    sync.RWMutex
	trips map[string]*models.Trip
	order []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{trips: make(map[string]*models.Trip)}
}

// Close is a no-op; dropping the Store releases everything.
func (s *Store) Close() error {
	return nil
}

// CreateTrip stores a copy of the trip.
func (s *Store) CreateTrip(_ context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trips[trip.ID]; exists {
		return fmt.Errorf("failed to insert trip: duplicate id %s", trip.ID)
	}
	s.trips[trip.ID] = cloneTrip(trip)
	s.order = append(s.order, trip.ID)
	return nil
}

// GetTrip returns a copy so callers can never alias the stored slices.
func (s *Store) GetTrip(_ context.Context, tripID string) (*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return nil, err
	}
	return cloneTrip(trip), nil
}

func (s *Store) ListTrips(_ context.Context) ([]*models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trips := make([]*models.Trip, 0, len(s.order))
	for _, id := range s.order {
		trips = append(trips, cloneTrip(s.trips[id]))
	}
	return trips, nil
}

func (s *Store) DeleteTrip(_ context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(tripID); err != nil {
		return err
	}
	delete(s.trips, tripID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == tripID })
	return nil
}

func (s *Store) UpdateTripCurrency(_ context.Context, tripID, currency string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return err
	}
	trip.Currency = currency
	return nil
}

func (s *Store) AddParticipant(_ context.Context, tripID string, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return err
	}
	if _, exists := trip.Participant(p.ID); exists {
		return fmt.Errorf("failed to insert participant: duplicate id %s", p.ID)
	}
	trip.Participants = append(trip.Participants, *p)
	return nil
}

// RemoveParticipant drops the participant and the expenses they paid under one lock,
// so no reader ever observes an expense pointing at a missing payer.
func (s *Store) RemoveParticipant(_ context.Context, tripID, participantID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return 0, err
	}
	idx := slices.IndexFunc(trip.Participants, func(p models.Participant) bool { return p.ID == participantID })
	if idx == -1 {
		return 0, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}

	before := len(trip.Expenses)
	trip.Expenses = slices.DeleteFunc(trip.Expenses, func(e models.Expense) bool { return e.PaidBy == participantID })
	trip.Participants = slices.Delete(trip.Participants, idx, idx+1)
	return before - len(trip.Expenses), nil
}

func (s *Store) AddExpense(_ context.Context, tripID string, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return err
	}
	if _, ok := trip.Participant(e.PaidBy); !ok {
		return fmt.Errorf("payer %s: %w", e.PaidBy, storage.ErrNotFound)
	}
	if _, exists := trip.Expense(e.ID); exists {
		return fmt.Errorf("failed to insert expense: duplicate id %s", e.ID)
	}
	trip.Expenses = append(trip.Expenses, *e)
	return nil
}

func (s *Store) RemoveExpense(_ context.Context, tripID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.lookup(tripID)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(trip.Expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if idx == -1 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	trip.Expenses = slices.Delete(trip.Expenses, idx, idx+1)
	return nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(tripID string) (*models.Trip, error) {
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return trip, nil
}

func cloneTrip(t *models.Trip) *models.Trip {
	c := *t
	c.Participants = slices.Clone(t.Participants)
	c.Expenses = slices.Clone(t.Expenses)
	return &c
}
