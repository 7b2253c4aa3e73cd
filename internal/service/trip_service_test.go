package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/ledger"
	"github.com/mmynk/tripledger/internal/storage/memory"
	"github.com/mmynk/tripledger/pkg/tripapi"
	"github.com/mmynk/tripledger/pkg/tripapi/tripapiconnect"
)

// setupTestServer serves a fresh TripService over HTTP and returns a client for it.
func setupTestServer(t *testing.T) tripapiconnect.TripServiceClient {
	t.Helper()

	store := memory.New()
	svc := NewTripService(ledger.New(store))

	path, handler := tripapiconnect.NewTripServiceHandler(svc)
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return tripapiconnect.NewTripServiceClient(http.DefaultClient, server.URL)
}

func createTrip(t *testing.T, client tripapiconnect.TripServiceClient, name string, people ...string) *tripapi.TripResponse {
	t.Helper()
	ctx := context.Background()

	resp, err := client.CreateTrip(ctx, connect.NewRequest(&tripapi.CreateTripRequest{Name: name}))
	require.NoError(t, err)
	out := resp.Msg
	for _, p := range people {
		resp, err = client.AddParticipant(ctx, connect.NewRequest(&tripapi.AddParticipantRequest{
			TripID: out.Trip.ID,
			Name:   p,
		}))
		require.NoError(t, err)
		out = resp.Msg
	}
	return out
}

func TestCreateTrip(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{
		Name:     "Lisbon",
		Currency: "eur",
	}))
	require.NoError(t, err)

	trip := resp.Msg.Trip
	require.NotNil(t, trip)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, "Lisbon", trip.Name)
	assert.Equal(t, "eur", trip.Currency)
	assert.Empty(t, trip.Participants)
	assert.Empty(t, trip.Expenses)

	assert.Equal(t, 0, resp.Msg.Report.PeopleCount)
	assert.True(t, resp.Msg.Report.Settled)
	assert.Equal(t, "0.00 eur", resp.Msg.Display.TotalSpent)
}

func TestCreateTripDefaultsCurrency(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{Name: "Oslo"}))
	require.NoError(t, err)
	assert.Equal(t, "USD", resp.Msg.Trip.Currency)
}

func TestCreateTripEmptyName(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.CreateTrip(context.Background(), connect.NewRequest(&tripapi.CreateTripRequest{Name: "   "}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestGetTripWithoutActiveTrip(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.GetTrip(context.Background(), connect.NewRequest(&tripapi.GetTripRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
}

func TestGetTripNotFound(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.GetTrip(context.Background(), connect.NewRequest(&tripapi.GetTripRequest{TripID: "missing"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestAddExpenseAndBalances(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created := createTrip(t, client, "Rome", "Alice", "Bob")
	alice := created.Trip.Participants[0]
	bob := created.Trip.Participants[1]

	resp, err := client.AddExpense(ctx, connect.NewRequest(&tripapi.AddExpenseRequest{
		Description: "Hotel",
		Amount:      100,
		PaidBy:      alice.ID,
		Category:    "lodging",
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Trip.Expenses, 1)
	assert.Equal(t, "Alice", resp.Msg.Trip.Expenses[0].PayerName)
	assert.Equal(t, "lodging", resp.Msg.Trip.Expenses[0].Category)

	bal, err := client.GetBalances(ctx, connect.NewRequest(&tripapi.GetBalancesRequest{}))
	require.NoError(t, err)

	report := bal.Msg.Report
	assert.Equal(t, created.Trip.ID, bal.Msg.TripID)
	assert.Equal(t, 2, report.PeopleCount)
	assert.Equal(t, 1, report.ExpenseCount)
	assert.Equal(t, 100.0, report.TotalSpent)
	assert.Equal(t, 50.0, report.PerPerson)
	assert.False(t, report.Settled)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, alice.ID, report.Rows[0].ID)
	assert.Equal(t, 50.0, report.Rows[0].Balance)
	assert.Equal(t, bob.ID, report.Rows[1].ID)
	assert.Equal(t, -50.0, report.Rows[1].Balance)

	display := bal.Msg.Display
	assert.Equal(t, "100.00 USD", display.TotalSpent)
	assert.Equal(t, "50.00 USD", display.PerPerson)
	assert.Equal(t, "+50.00 USD", display.Rows[0].Balance)
	assert.Equal(t, "-50.00 USD", display.Rows[1].Balance)
}

func TestAddExpenseValidation(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created := createTrip(t, client, "Paris", "Alice")
	payer := created.Trip.Participants[0].ID

	tests := []struct {
		name string
		req  *tripapi.AddExpenseRequest
	}{
		{"empty description", &tripapi.AddExpenseRequest{Description: " ", Amount: 10, PaidBy: payer}},
		{"zero amount", &tripapi.AddExpenseRequest{Description: "Taxi", Amount: 0, PaidBy: payer}},
		{"negative amount", &tripapi.AddExpenseRequest{Description: "Taxi", Amount: -5, PaidBy: payer}},
		{"missing payer", &tripapi.AddExpenseRequest{Description: "Taxi", Amount: 5}},
		{"unknown payer", &tripapi.AddExpenseRequest{Description: "Taxi", Amount: 5, PaidBy: "nobody"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddExpense(ctx, connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}

	resp, err := client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Trip.Expenses)
}

func TestRemoveParticipantCascades(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created := createTrip(t, client, "Berlin", "Alice", "Bob")
	alice := created.Trip.Participants[0].ID
	bob := created.Trip.Participants[1].ID

	for _, req := range []*tripapi.AddExpenseRequest{
		{Description: "Dinner", Amount: 60, PaidBy: alice},
		{Description: "Museum", Amount: 30, PaidBy: bob},
		{Description: "Bar", Amount: 20, PaidBy: alice},
	} {
		_, err := client.AddExpense(ctx, connect.NewRequest(req))
		require.NoError(t, err)
	}

	resp, err := client.RemoveParticipant(ctx, connect.NewRequest(&tripapi.RemoveParticipantRequest{ParticipantID: alice}))
	require.NoError(t, err)

	trip := resp.Msg.Trip
	require.Len(t, trip.Participants, 1)
	require.Len(t, trip.Expenses, 1)
	assert.Equal(t, "Museum", trip.Expenses[0].Description)
	assert.Equal(t, 30.0, resp.Msg.Report.TotalSpent)
	assert.True(t, resp.Msg.Report.Settled)

	_, err = client.RemoveParticipant(ctx, connect.NewRequest(&tripapi.RemoveParticipantRequest{ParticipantID: alice}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestRemoveExpense(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created := createTrip(t, client, "Madrid", "Alice", "Bob")
	added, err := client.AddExpense(ctx, connect.NewRequest(&tripapi.AddExpenseRequest{
		Description: "Tapas",
		Amount:      40,
		PaidBy:      created.Trip.Participants[1].ID,
	}))
	require.NoError(t, err)

	expenseID := added.Msg.Trip.Expenses[0].ID
	resp, err := client.RemoveExpense(ctx, connect.NewRequest(&tripapi.RemoveExpenseRequest{ExpenseID: expenseID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Trip.Expenses)
	assert.Equal(t, 0.0, resp.Msg.Report.TotalSpent)

	_, err = client.RemoveExpense(ctx, connect.NewRequest(&tripapi.RemoveExpenseRequest{ExpenseID: expenseID}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestSetCurrencyOnlyChangesDisplay(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	created := createTrip(t, client, "Tokyo", "Alice", "Bob", "Carol")
	_, err := client.AddExpense(ctx, connect.NewRequest(&tripapi.AddExpenseRequest{
		Description: "Sushi",
		Amount:      10,
		PaidBy:      created.Trip.Participants[0].ID,
	}))
	require.NoError(t, err)

	resp, err := client.SetCurrency(ctx, connect.NewRequest(&tripapi.SetCurrencyRequest{Currency: "jpy"}))
	require.NoError(t, err)

	assert.Equal(t, "jpy", resp.Msg.Trip.Currency)
	assert.Equal(t, 10.0, resp.Msg.Report.TotalSpent)
	assert.Equal(t, "3.33 jpy", resp.Msg.Display.PerPerson)
	assert.Equal(t, "+6.67 jpy", resp.Msg.Display.Rows[0].Balance)
	assert.Equal(t, "-3.33 jpy", resp.Msg.Display.Rows[1].Balance)
}

func TestListSelectAndDeleteTrips(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	first := createTrip(t, client, "First")
	second := createTrip(t, client, "Second")

	list, err := client.ListTrips(ctx, connect.NewRequest(&tripapi.ListTripsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Trips, 2)
	assert.Equal(t, "First", list.Msg.Trips[0].Name)
	assert.False(t, list.Msg.Trips[0].Active)
	assert.True(t, list.Msg.Trips[1].Active)
	assert.Equal(t, "0.00 USD", list.Msg.Trips[1].TotalSpentText)

	selected, err := client.SelectTrip(ctx, connect.NewRequest(&tripapi.SelectTripRequest{TripID: first.Trip.ID}))
	require.NoError(t, err)
	assert.Equal(t, first.Trip.ID, selected.Msg.Trip.ID)

	_, err = client.DeleteTrip(ctx, connect.NewRequest(&tripapi.DeleteTripRequest{}))
	require.NoError(t, err)

	_, err = client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	got, err := client.GetTrip(ctx, connect.NewRequest(&tripapi.GetTripRequest{TripID: second.Trip.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Msg.Trip.Name)

	_, err = client.SelectTrip(ctx, connect.NewRequest(&tripapi.SelectTripRequest{TripID: first.Trip.ID}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
