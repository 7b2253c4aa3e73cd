package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/internal/storage/storagetest"
)

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		store, err := New("")
		require.NoError(t, err, "failed to create store")
		return store
	})
}

func TestNewIsolatesDatabases(t *testing.T) {
	ctx := context.Background()

	first, err := New("")
	require.NoError(t, err)
	defer first.Close()

	second, err := New("")
	require.NoError(t, err)
	defer second.Close()

	trip := &models.Trip{Name: "Only in first", Currency: "USD"}
	require.NoError(t, first.CreateTrip(ctx, trip))

	trips, err := second.ListTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestCreateTripWithChildren(t *testing.T) {
	ctx := context.Background()
	store, err := New("")
	require.NoError(t, err)
	defer store.Close()

	trip := &models.Trip{
		Name:         "Seeded",
		Currency:     "CHF",
		Participants: []models.Participant{{Name: "Alice"}, {Name: "Bob"}},
	}
	require.NoError(t, store.CreateTrip(ctx, trip))
	require.NotEmpty(t, trip.Participants[0].ID)

	e := models.Expense{Description: "Fondue", Amount: 48, PaidBy: trip.Participants[1].ID}
	require.NoError(t, store.AddExpense(ctx, trip.ID, &e))

	got, err := store.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 2)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "Bob", got.PayerName(got.Expenses[0]))
}

func TestSchemaRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	store, err := New("")
	require.NoError(t, err)
	defer store.Close()

	trip := &models.Trip{Name: "Checks", Currency: "USD", Participants: []models.Participant{{Name: "Alice"}}}
	require.NoError(t, store.CreateTrip(ctx, trip))

	e := models.Expense{Description: "Refund", Amount: -1, PaidBy: trip.Participants[0].ID}
	assert.Error(t, store.AddExpense(ctx, trip.ID, &e))
}

func TestAddExpenseRacingRemoveParticipant(t *testing.T) {
	ctx := context.Background()

	store, err := New("")
	require.NoError(t, err)
	defer store.Close()

	const n = 20
	trip := &models.Trip{Name: "Race", Currency: "USD"}
	for i := 0; i < n; i++ {
		trip.Participants = append(trip.Participants, models.Participant{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("P%d", i)})
	}
	require.NoError(t, store.CreateTrip(ctx, trip))

	var wg sync.WaitGroup
	addErrs := make([]error, n)
	for i := 0; i < n; i++ {
		payer := fmt.Sprintf("p%d", i)
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			addErrs[i] = store.AddExpense(ctx, trip.ID, &models.Expense{Description: "Taxi", Amount: 5, PaidBy: payer})
		}(i)
		go func() {
			defer wg.Done()
			_, err := store.RemoveParticipant(ctx, trip.ID, payer)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for i, err := range addErrs {
		if err != nil {
			assert.True(t, errors.Is(err, storage.ErrNotFound), "expense %d: %v", i, err)
		}
	}

	got, err := store.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)
	assert.Empty(t, got.Expenses)
}
