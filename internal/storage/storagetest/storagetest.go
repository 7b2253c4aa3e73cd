// Package storagetest holds the behaviour every storage.Store backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) storage.Store

// Run exercises a backend against the storage.Store contract.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	open := func(t *testing.T) storage.Store {
		t.Helper()
		store := newStore(t)
		t.Cleanup(func() { store.Close() })
		return store
	}

	newTrip := func(t *testing.T, store storage.Store, name string) *models.Trip {
		t.Helper()
		trip := &models.Trip{Name: name, Currency: "EUR"}
		require.NoError(t, store.CreateTrip(ctx, trip))
		return trip
	}

	addPerson := func(t *testing.T, store storage.Store, tripID, name string) models.Participant {
		t.Helper()
		p := models.Participant{Name: name}
		require.NoError(t, store.AddParticipant(ctx, tripID, &p))
		return p
	}

	addExpense := func(t *testing.T, store storage.Store, tripID, desc string, amount float64, paidBy string) models.Expense {
		t.Helper()
		e := models.Expense{Description: desc, Amount: amount, PaidBy: paidBy}
		require.NoError(t, store.AddExpense(ctx, tripID, &e))
		return e
	}

	t.Run("CreateTrip generates ID and timestamp", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Lisbon")

		assert.NotEmpty(t, trip.ID)
		assert.NotZero(t, trip.CreatedAt)

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", got.Name)
		assert.Equal(t, "EUR", got.Currency)
		assert.Empty(t, got.Participants)
		assert.Empty(t, got.Expenses)
	})

	t.Run("GetTrip returns ErrNotFound for unknown trip", func(t *testing.T) {
		store := open(t)
		_, err := store.GetTrip(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListTrips keeps creation order", func(t *testing.T) {
		store := open(t)
		a := newTrip(t, store, "A")
		b := newTrip(t, store, "B")
		c := newTrip(t, store, "C")

		trips, err := store.ListTrips(ctx)
		require.NoError(t, err)
		require.Len(t, trips, 3)
		assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{trips[0].ID, trips[1].ID, trips[2].ID})
	})

	t.Run("participants and expenses keep insertion order", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Oslo")
		names := []string{"Zoe", "Adam", "Mia"}
		for _, n := range names {
			addPerson(t, store, trip.ID, n)
		}
		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, got.Participants, 3)
		for i, n := range names {
			assert.Equal(t, n, got.Participants[i].Name)
		}

		e1 := addExpense(t, store, trip.ID, "Ferry", 30, got.Participants[2].ID)
		e2 := addExpense(t, store, trip.ID, "Bread", 4.2, got.Participants[0].ID)
		got, err = store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, got.Expenses, 2)
		assert.Equal(t, e1.ID, got.Expenses[0].ID)
		assert.Equal(t, e2.ID, got.Expenses[1].ID)
		assert.Equal(t, 4.2, got.Expenses[1].Amount)
		assert.NotZero(t, got.Expenses[0].CreatedAt)
	})

	t.Run("AddExpense rejects payer from another trip", func(t *testing.T) {
		store := open(t)
		one := newTrip(t, store, "One")
		two := newTrip(t, store, "Two")
		stranger := addPerson(t, store, two.ID, "Stranger")

		e := models.Expense{Description: "Taxi", Amount: 10, PaidBy: stranger.ID}
		err := store.AddExpense(ctx, one.ID, &e)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("AddParticipant on unknown trip", func(t *testing.T) {
		store := open(t)
		p := models.Participant{Name: "Alice"}
		assert.ErrorIs(t, store.AddParticipant(ctx, "missing", &p), storage.ErrNotFound)
	})

	t.Run("RemoveParticipant cascades to paid expenses only", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Rome")
		alice := addPerson(t, store, trip.ID, "Alice")
		bob := addPerson(t, store, trip.ID, "Bob")
		addExpense(t, store, trip.ID, "Pizza", 20, alice.ID)
		kept := addExpense(t, store, trip.ID, "Gelato", 6, bob.ID)
		addExpense(t, store, trip.ID, "Museum", 30, alice.ID)

		removed, err := store.RemoveParticipant(ctx, trip.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		require.Len(t, got.Participants, 1)
		assert.Equal(t, bob.ID, got.Participants[0].ID)
		require.Len(t, got.Expenses, 1)
		assert.Equal(t, kept.ID, got.Expenses[0].ID)
	})

	t.Run("RemoveParticipant unknown participant", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Rome")
		_, err := store.RemoveParticipant(ctx, trip.ID, "ghost")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("RemoveExpense", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Paris")
		alice := addPerson(t, store, trip.ID, "Alice")
		e := addExpense(t, store, trip.ID, "Croissant", 2.5, alice.ID)

		require.NoError(t, store.RemoveExpense(ctx, trip.ID, e.ID))
		assert.ErrorIs(t, store.RemoveExpense(ctx, trip.ID, e.ID), storage.ErrNotFound)

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Expenses)
		assert.Len(t, got.Participants, 1)
	})

	t.Run("UpdateTripCurrency", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Tokyo")
		require.NoError(t, store.UpdateTripCurrency(ctx, trip.ID, "JPY"))

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "JPY", got.Currency)

		assert.ErrorIs(t, store.UpdateTripCurrency(ctx, "missing", "JPY"), storage.ErrNotFound)
	})

	t.Run("DeleteTrip removes everything it owns", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Berlin")
		other := newTrip(t, store, "Kept")
		alice := addPerson(t, store, trip.ID, "Alice")
		addExpense(t, store, trip.ID, "Beer", 5, alice.ID)

		require.NoError(t, store.DeleteTrip(ctx, trip.ID))
		_, err := store.GetTrip(ctx, trip.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteTrip(ctx, trip.ID), storage.ErrNotFound)

		trips, err := store.ListTrips(ctx)
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, other.ID, trips[0].ID)
	})

	t.Run("returned trips do not alias stored state", func(t *testing.T) {
		store := open(t)
		trip := newTrip(t, store, "Madrid")
		addPerson(t, store, trip.ID, "Alice")

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		got.Participants[0].Name = "Mallory"
		got.Name = "Changed"

		again, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", again.Participants[0].Name)
		assert.Equal(t, "Madrid", again.Name)
	})
}
