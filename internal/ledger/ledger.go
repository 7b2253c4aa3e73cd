// Package ledger owns the trip collection and the currently active trip.
//
// A Ledger validates every mutation before it reaches storage, keeps the cascade-delete
// invariant between participants and expenses, and recomputes the balance report after
// each change. Operations are serialized: one completes before the next begins.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

var (
	ErrTripNotFound        = errors.New("trip not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrUnknownPayer        = errors.New("payer must be a participant of the trip")
	ErrNoActiveTrip        = errors.New("no active trip selected")
)

// Snapshot is a trip together with the balance report computed from it.
type Snapshot struct {
	Trip   *models.Trip
	Report calculator.BalanceReport
}

// TripSummary is one line of the trip list.
type TripSummary struct {
	ID               string
	Name             string
	Currency         string
	TotalSpent       float64
	ParticipantCount int
	ExpenseCount     int
	Active           bool
	CreatedAt        int64
}

// ExpenseInput carries the caller-provided fields of a new expense.
type ExpenseInput struct {
	Description string
	Amount      float64
	PaidBy      string
	Category    string
}

// Recorder observes ledger activity. internal/metrics provides the Prometheus one.
type Recorder interface {
	// Mutation is called once per mutating operation with its outcome.
	Mutation(op string, err error)
	// Trips is called with the number of trips after it changes.
	Trips(n int)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, error) {}
func (nopRecorder) Trips(int)              {}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRecorder installs a Recorder.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) { l.recorder = r }
}

// WithLogger replaces slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Ledger is the explicit trip store handed to whoever needs the active trip.
type Ledger struct {
	mu       sync.Mutex
	store    storage.Store
	activeID string
	recorder Recorder
	logger   *slog.Logger
}

// New creates a Ledger on top of a storage backend.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		recorder: nopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateTrip creates a trip and makes it the active one.
func (l *Ledger) CreateTrip(ctx context.Context, name, currency string) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("create_trip", err) }()

	trip, err := models.NewTrip(name, currency)
	if err != nil {
		return Snapshot{}, err
	}
	if err := l.store.CreateTrip(ctx, trip); err != nil {
		return Snapshot{}, fmt.Errorf("create trip: %w", err)
	}
	l.activeID = trip.ID
	l.logger.Debug("Trip created", "trip_id", trip.ID, "name", trip.Name, "currency", trip.Currency)

	l.countTrips(ctx)
	return l.snapshot(ctx, trip.ID)
}

// ListTrips returns every trip with its totals, in creation order.
func (l *Ledger) ListTrips(ctx context.Context) ([]TripSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	trips, err := l.store.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	summaries := make([]TripSummary, len(trips))
	for i, trip := range trips {
		summaries[i] = TripSummary{
			ID:               trip.ID,
			Name:             trip.Name,
			Currency:         trip.Currency,
			TotalSpent:       trip.TotalSpent(),
			ParticipantCount: len(trip.Participants),
			ExpenseCount:     len(trip.Expenses),
			Active:           trip.ID == l.activeID,
			CreatedAt:        trip.CreatedAt,
		}
	}
	return summaries, nil
}

// SelectTrip makes tripID the active trip.
func (l *Ledger) SelectTrip(ctx context.Context, tripID string) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.snapshot(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	l.activeID = snap.Trip.ID
	return snap, nil
}

// ActiveTrip returns the currently selected trip.
func (l *Ledger) ActiveTrip(ctx context.Context) (Snapshot, error) {
	return l.GetTrip(ctx, "")
}

// GetTrip returns a trip and its balances. An empty tripID means the active trip.
func (l *Ledger) GetTrip(ctx context.Context, tripID string) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	return l.snapshot(ctx, id)
}

// Balances returns only the report of a trip.
func (l *Ledger) Balances(ctx context.Context, tripID string) (calculator.BalanceReport, error) {
	snap, err := l.GetTrip(ctx, tripID)
	if err != nil {
		return calculator.BalanceReport{}, err
	}
	return snap.Report, nil
}

// DeleteTrip discards a trip with everything it owns.
func (l *Ledger) DeleteTrip(ctx context.Context, tripID string) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("delete_trip", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return err
	}
	if err := l.store.DeleteTrip(ctx, id); err != nil {
		return translate(err, ErrTripNotFound)
	}
	if l.activeID == id {
		l.activeID = ""
	}
	l.logger.Debug("Trip deleted", "trip_id", id)

	l.countTrips(ctx)
	return nil
}

// SetCurrency changes the display currency; a blank code resets it to the default.
func (l *Ledger) SetCurrency(ctx context.Context, tripID, currency string) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("set_currency", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := l.store.UpdateTripCurrency(ctx, id, models.NormalizeCurrency(currency)); err != nil {
		return Snapshot{}, translate(err, ErrTripNotFound)
	}
	return l.snapshot(ctx, id)
}

// AddParticipant appends a participant to a trip.
func (l *Ledger) AddParticipant(ctx context.Context, tripID, name string) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("add_participant", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	p, err := models.NewParticipant(name)
	if err != nil {
		return Snapshot{}, err
	}
	if err := l.store.AddParticipant(ctx, id, &p); err != nil {
		return Snapshot{}, translate(err, ErrTripNotFound)
	}
	l.logger.Debug("Participant added", "trip_id", id, "participant_id", p.ID)
	return l.snapshot(ctx, id)
}

// RemoveParticipant removes a participant together with every expense they paid.
func (l *Ledger) RemoveParticipant(ctx context.Context, tripID, participantID string) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("remove_participant", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	trip, err := l.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if _, ok := trip.Participant(participantID); !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, participantID)
	}

	removed, err := l.store.RemoveParticipant(ctx, id, participantID)
	if err != nil {
		return Snapshot{}, translate(err, ErrParticipantNotFound)
	}
	l.logger.Debug("Participant removed",
		"trip_id", id,
		"participant_id", participantID,
		"expenses_removed", removed,
	)
	return l.snapshot(ctx, id)
}

// AddExpense records a payment. The payer must currently be part of the trip.
func (l *Ledger) AddExpense(ctx context.Context, tripID string, in ExpenseInput) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("add_expense", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	e, err := models.NewExpense(in.Description, in.Amount, in.PaidBy, in.Category)
	if err != nil {
		return Snapshot{}, err
	}
	trip, err := l.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if _, ok := trip.Participant(e.PaidBy); !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownPayer, e.PaidBy)
	}

	if err := l.store.AddExpense(ctx, id, &e); err != nil {
		return Snapshot{}, translate(err, ErrUnknownPayer)
	}
	l.logger.Debug("Expense added", "trip_id", id, "expense_id", e.ID, "amount", e.Amount, "paid_by", e.PaidBy)
	return l.snapshot(ctx, id)
}

// RemoveExpense deletes one expense.
func (l *Ledger) RemoveExpense(ctx context.Context, tripID, expenseID string) (snap Snapshot, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.recorder.Mutation("remove_expense", err) }()

	id, err := l.resolve(tripID)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := l.load(ctx, id); err != nil {
		return Snapshot{}, err
	}
	if err := l.store.RemoveExpense(ctx, id, expenseID); err != nil {
		return Snapshot{}, translate(err, ErrExpenseNotFound)
	}
	return l.snapshot(ctx, id)
}

// resolve maps "" to the active trip. Must be called with l.mu held.
func (l *Ledger) resolve(tripID string) (string, error) {
	if tripID != "" {
		return tripID, nil
	}
	if l.activeID == "" {
		return "", ErrNoActiveTrip
	}
	return l.activeID, nil
}

func (l *Ledger) load(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := l.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, translate(err, ErrTripNotFound)
	}
	return trip, nil
}

// snapshot reloads the trip and recomputes its report. Must be called with l.mu held.
func (l *Ledger) snapshot(ctx context.Context, tripID string) (Snapshot, error) {
	trip, err := l.load(ctx, tripID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Trip:   trip,
		Report: calculator.Compute(trip.Participants, trip.Expenses),
	}, nil
}

func (l *Ledger) countTrips(ctx context.Context) {
	trips, err := l.store.ListTrips(ctx)
	if err != nil {
		l.logger.Warn("countTrips: failed to list trips", "error", err)
		return
	}
	l.recorder.Trips(len(trips))
}

// translate replaces storage.ErrNotFound with the ledger-level sentinel.
func translate(err, notFound error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	return err
}
