package models

import "strings"

// DefaultCurrency is applied whenever a trip is given a blank currency code.
const DefaultCurrency = "USD"

// Trip represents a shared ledger of participants and expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// Currency is a free-text currency code used for display only.
	// It is never empty: NormalizeCurrency falls back to DefaultCurrency.
	Currency string

	// Participants are kept in the order they were added.
	Participants []Participant

	// Expenses are kept in the order they were added.
	Expenses []Expense

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Participant returns the participant with the given ID.
func (t *Trip) Participant(id string) (Participant, bool) {
	for _, p := range t.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Expense returns the expense with the given ID.
func (t *Trip) Expense(id string) (Expense, bool) {
	for _, e := range t.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return Expense{}, false
}

// TotalSpent sums every expense amount of the trip.
func (t *Trip) TotalSpent() float64 {
	total := 0.0
	for _, e := range t.Expenses {
		total += e.Amount
	}
	return total
}

// PayerName resolves the display name of an expense's payer.
// Returns "Unknown" when the payer is no longer part of the trip.
func (t *Trip) PayerName(e Expense) string {
	if p, ok := t.Participant(e.PaidBy); ok {
		return p.Name
	}
	return "Unknown"
}

// NormalizeCurrency trims the code and applies DefaultCurrency when it is blank.
func NormalizeCurrency(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// NewTrip validates the name and returns a trip without ID or timestamp.
// The store assigns those.
func NewTrip(name, currency string) (*Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Trip{
		Name:     name,
		Currency: NormalizeCurrency(currency),
	}, nil
}
