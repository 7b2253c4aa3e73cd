package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/models"
)

func people(names ...string) []models.Participant {
	ps := make([]models.Participant, len(names))
	for i, n := range names {
		ps[i] = models.Participant{ID: n, Name: n}
	}
	return ps
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		validateFunc func(t *testing.T, r BalanceReport)
	}{
		{
			name:         "one payer, two people",
			participants: people("Alice", "Bob"),
			expenses:     []models.Expense{{ID: "e1", Amount: 100, PaidBy: "Alice"}},
			validateFunc: func(t *testing.T, r BalanceReport) {
				assert.Equal(t, 2, r.PeopleCount)
				assert.Equal(t, 100.0, r.TotalSpent)
				assert.Equal(t, 50.0, r.PerPerson)
				require.Len(t, r.Rows, 2)
				assert.Equal(t, "Alice", r.Rows[0].Name)
				assert.Equal(t, 50.0, r.Rows[0].Balance)
				assert.Equal(t, 100.0, r.Rows[0].PaidTotal)
				assert.Equal(t, -50.0, r.Rows[1].Balance)
				assert.Equal(t, 50.0, r.Rows[1].ShouldPay)
			},
		},
		{
			name:         "no participants keeps orphaned spend",
			participants: nil,
			expenses:     []models.Expense{{ID: "e1", Amount: 40, PaidBy: "ghost"}},
			validateFunc: func(t *testing.T, r BalanceReport) {
				assert.Equal(t, 0, r.PeopleCount)
				assert.Equal(t, 40.0, r.TotalSpent)
				assert.Equal(t, 0.0, r.PerPerson)
				assert.Empty(t, r.Rows)
				assert.NotNil(t, r.Rows)
			},
		},
		{
			name:         "no expenses",
			participants: people("Alice"),
			validateFunc: func(t *testing.T, r BalanceReport) {
				assert.Equal(t, 0.0, r.TotalSpent)
				assert.Equal(t, 0.0, r.PerPerson)
				require.Len(t, r.Rows, 1)
				assert.Equal(t, 0.0, r.Rows[0].PaidTotal)
				assert.Equal(t, 0.0, r.Rows[0].Balance)
				assert.True(t, r.Settled())
			},
		},
		{
			name:         "same payer twice among three",
			participants: people("Alice", "Bob", "Charlie"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 30, PaidBy: "Bob"},
				{ID: "e2", Amount: 12.5, PaidBy: "Bob"},
			},
			validateFunc: func(t *testing.T, r BalanceReport) {
				assert.Equal(t, 0.0, r.Rows[0].PaidTotal)
				assert.Equal(t, 42.5, r.Rows[1].PaidTotal)
				assert.Equal(t, 0.0, r.Rows[2].PaidTotal)
				assert.Equal(t, 2, r.ExpenseCount)
				assert.False(t, r.Settled())
			},
		},
		{
			name:         "unresolved payer is excluded from rows",
			participants: people("Alice", "Bob"),
			expenses: []models.Expense{
				{ID: "e1", Amount: 20, PaidBy: "Alice"},
				{ID: "e2", Amount: 10, PaidBy: "removed"},
			},
			validateFunc: func(t *testing.T, r BalanceReport) {
				assert.Equal(t, 30.0, r.TotalSpent)
				assert.Equal(t, 15.0, r.PerPerson)
				assert.Equal(t, 20.0, r.Rows[0].PaidTotal)
				assert.Equal(t, 0.0, r.Rows[1].PaidTotal)
				assert.Equal(t, 5.0, r.Rows[0].Balance)
				assert.Equal(t, -15.0, r.Rows[1].Balance)
			},
		},
		{
			name:         "full precision is kept",
			participants: people("Alice", "Bob", "Charlie"),
			expenses:     []models.Expense{{ID: "e1", Amount: 10, PaidBy: "Alice"}},
			validateFunc: func(t *testing.T, r BalanceReport) {
				third := 10.0 / 3
				assert.Equal(t, third, r.PerPerson)
				assert.Equal(t, 10-third, r.Rows[0].Balance)
				assert.Equal(t, -third, r.Rows[1].Balance)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Compute(tt.participants, tt.expenses))
		})
	}
}

func TestComputeDoesNotMutateInputs(t *testing.T) {
	participants := people("Alice", "Bob")
	expenses := []models.Expense{{ID: "e1", Amount: 7, PaidBy: "Bob"}}

	first := Compute(participants, expenses)
	second := Compute(participants, expenses)

	assert.Equal(t, first, second)
	assert.Equal(t, people("Alice", "Bob"), participants)
	assert.Equal(t, []models.Expense{{ID: "e1", Amount: 7, PaidBy: "Bob"}}, expenses)
}

func TestComputeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := rng.Intn(6)
		names := make([]string, n)
		for j := range names {
			names[j] = fmt.Sprintf("p%d", j)
		}
		participants := people(names...)

		var expenses []models.Expense
		allResolved := true
		m := rng.Intn(10)
		for j := 0; j < m; j++ {
			payer := "stale"
			if n > 0 && rng.Intn(5) > 0 {
				payer = names[rng.Intn(n)]
			} else {
				allResolved = false
			}
			expenses = append(expenses, models.Expense{
				ID:     fmt.Sprintf("e%d", j),
				Amount: float64(rng.Intn(100000)+1) / 100,
				PaidBy: payer,
			})
		}

		r := Compute(participants, expenses)

		paidSum, balanceSum := 0.0, 0.0
		for _, row := range r.Rows {
			paidSum += row.PaidTotal
			balanceSum += row.Balance
		}

		assert.LessOrEqual(t, paidSum, r.TotalSpent+1e-9)
		if allResolved {
			assert.InDelta(t, r.TotalSpent, paidSum, 1e-9)
		}
		if n > 0 && allResolved {
			assert.InDelta(t, 0, balanceSum, 1e-9, "balances must sum to zero")
		}
		if n > 0 {
			// Spend by a payer outside the trip is shared but credited to nobody.
			assert.InDelta(t, paidSum-r.TotalSpent, balanceSum, 1e-9)
		}
		assert.Equal(t, r, Compute(participants, expenses))
	}
}

func TestComputeUnresolvedPayerIsSharedButNotCredited(t *testing.T) {
	participants := people("a", "b")
	expenses := []models.Expense{
		{ID: "e1", Amount: 10, PaidBy: "a"},
		{ID: "e2", Amount: 6, PaidBy: "stale"},
	}

	r := Compute(participants, expenses)

	assert.Equal(t, 16.0, r.TotalSpent)
	assert.Equal(t, 8.0, r.PerPerson)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, 2.0, r.Rows[0].Balance)
	assert.Equal(t, -8.0, r.Rows[1].Balance)
	assert.Equal(t, -6.0, r.Rows[0].Balance+r.Rows[1].Balance)
}
