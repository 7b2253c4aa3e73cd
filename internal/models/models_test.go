package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrip(t *testing.T) {
	trip, err := NewTrip("  Lisbon  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", trip.Name)
	assert.Equal(t, DefaultCurrency, trip.Currency)

	trip, err = NewTrip("Oslo", " NOK ")
	require.NoError(t, err)
	assert.Equal(t, "NOK", trip.Currency)

	_, err = NewTrip("   ", "EUR")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewParticipant(t *testing.T) {
	p, err := NewParticipant(" Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Empty(t, p.ID)

	_, err = NewParticipant("\t")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewExpense(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      float64
		paidBy      string
		wantErr     error
	}{
		{name: "valid", description: "Dinner", amount: 42.5, paidBy: "p1"},
		{name: "blank description", description: "  ", amount: 10, paidBy: "p1", wantErr: ErrEmptyDescription},
		{name: "zero amount", description: "Taxi", amount: 0, paidBy: "p1", wantErr: ErrInvalidAmount},
		{name: "negative amount", description: "Taxi", amount: -3, paidBy: "p1", wantErr: ErrInvalidAmount},
		{name: "NaN amount", description: "Taxi", amount: math.NaN(), paidBy: "p1", wantErr: ErrInvalidAmount},
		{name: "infinite amount", description: "Taxi", amount: math.Inf(1), paidBy: "p1", wantErr: ErrInvalidAmount},
		{name: "missing payer", description: "Taxi", amount: 3, paidBy: " ", wantErr: ErrMissingPayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExpense(tt.description, tt.amount, tt.paidBy, " food ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, e.Amount)
			assert.Equal(t, "food", e.Category)
		})
	}
}

func TestTripLookups(t *testing.T) {
	trip := &Trip{
		Participants: []Participant{{ID: "a", Name: "Alice"}},
		Expenses: []Expense{
			{ID: "e1", Amount: 10, PaidBy: "a"},
			{ID: "e2", Amount: 5.5, PaidBy: "gone"},
		},
	}

	assert.Equal(t, 15.5, trip.TotalSpent())
	assert.Equal(t, "Alice", trip.PayerName(trip.Expenses[0]))
	assert.Equal(t, "Unknown", trip.PayerName(trip.Expenses[1]))

	_, ok := trip.Expense("e2")
	assert.True(t, ok)
	_, ok = trip.Participant("gone")
	assert.False(t, ok)
}

func TestNormalizeCurrency(t *testing.T) {
	tests := map[string]string{
		"":       DefaultCurrency,
		"   ":    DefaultCurrency,
		" EUR ":  "EUR",
		"eur":    "eur",
		"Points": "Points",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCurrency(in), "input %q", in)
	}
}
