package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrMissingPayer     = errors.New("payer is required")
)

// Participant represents one traveller of a trip.
type Participant struct {
	// ID is unique within the owning trip (UUID format).
	ID string

	// Name is the display name, never empty after trimming.
	Name string
}

// Expense represents a payment made by one participant for the whole trip.
// Under the equal-split policy every participant owes the same share of it.
type Expense struct {
	// ID is unique within the owning trip (UUID format).
	ID string

	// Description is what was paid for (e.g., "Dinner", "Taxi").
	Description string

	// Amount is strictly positive.
	Amount float64

	// PaidBy is the ID of the participant who paid.
	PaidBy string

	// Category is an optional free-text label.
	Category string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// NewParticipant trims the name and rejects blank names.
func NewParticipant(name string) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, ErrEmptyName
	}
	return Participant{Name: name}, nil
}

// NewExpense validates the fields of an expense.
// Whether PaidBy refers to an existing participant is checked by the ledger,
// which is the only component that sees the trip's participant list.
func NewExpense(description string, amount float64, paidBy, category string) (Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Expense{}, ErrEmptyDescription
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Expense{}, fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}
	paidBy = strings.TrimSpace(paidBy)
	if paidBy == "" {
		return Expense{}, ErrMissingPayer
	}
	return Expense{
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		Category:    strings.TrimSpace(category),
	}, nil
}
