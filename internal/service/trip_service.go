package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/ledger"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/pkg/tripapi"
	"github.com/mmynk/tripledger/pkg/tripapi/tripapiconnect"
)

// TripService implements the Connect TripService on top of a ledger.
type TripService struct {
	tripapiconnect.UnimplementedTripServiceHandler
	ledger *ledger.Ledger
}

// NewTripService creates a new TripService backed by the given ledger.
func NewTripService(l *ledger.Ledger) *TripService {
	return &TripService{ledger: l}
}

// CreateTrip creates a trip and selects it.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[tripapi.CreateTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("CreateTrip request received", "name", req.Msg.Name, "currency", req.Msg.Currency)

	snap, err := s.ledger.CreateTrip(ctx, req.Msg.Name, req.Msg.Currency)
	if err != nil {
		return nil, toConnectError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", snap.Trip.ID, "currency", snap.Trip.Currency)
	return connect.NewResponse(tripResponse(snap)), nil
}

// ListTrips lists every trip with its total spent.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[tripapi.ListTripsRequest]) (*connect.Response[tripapi.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	summaries, err := s.ledger.ListTrips(ctx)
	if err != nil {
		return nil, toConnectError("ListTrips", err)
	}

	trips := make([]tripapi.TripSummary, len(summaries))
	for i, t := range summaries {
		trips[i] = tripapi.TripSummary{
			ID:               t.ID,
			Name:             t.Name,
			Currency:         t.Currency,
			TotalSpent:       t.TotalSpent,
			TotalSpentText:   money.Format(t.TotalSpent, t.Currency),
			ParticipantCount: t.ParticipantCount,
			ExpenseCount:     t.ExpenseCount,
			Active:           t.Active,
			CreatedAt:        t.CreatedAt,
		}
	}

	slog.Info("ListTrips successful", "count", len(trips))
	return connect.NewResponse(&tripapi.ListTripsResponse{Trips: trips}), nil
}

// SelectTrip changes the active trip.
func (s *TripService) SelectTrip(ctx context.Context, req *connect.Request[tripapi.SelectTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("SelectTrip request received", "trip_id", req.Msg.TripID)

	snap, err := s.ledger.SelectTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("SelectTrip", err)
	}
	return connect.NewResponse(tripResponse(snap)), nil
}

// GetTrip reads a trip, or the active one when no ID is given.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[tripapi.GetTripRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	snap, err := s.ledger.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetTrip", err)
	}

	slog.Info("GetTrip successful",
		"trip_id", snap.Trip.ID,
		"participants_count", len(snap.Trip.Participants),
		"expenses_count", len(snap.Trip.Expenses),
	)
	return connect.NewResponse(tripResponse(snap)), nil
}

// DeleteTrip discards a trip.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[tripapi.DeleteTripRequest]) (*connect.Response[tripapi.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	if err := s.ledger.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		return nil, toConnectError("DeleteTrip", err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)
	return connect.NewResponse(&tripapi.DeleteTripResponse{}), nil
}

// SetCurrency changes the display currency of a trip.
func (s *TripService) SetCurrency(ctx context.Context, req *connect.Request[tripapi.SetCurrencyRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("SetCurrency request received", "trip_id", req.Msg.TripID, "currency", req.Msg.Currency)

	snap, err := s.ledger.SetCurrency(ctx, req.Msg.TripID, req.Msg.Currency)
	if err != nil {
		return nil, toConnectError("SetCurrency", err)
	}
	return connect.NewResponse(tripResponse(snap)), nil
}

// AddParticipant adds a traveller to a trip.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[tripapi.AddParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("AddParticipant request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	snap, err := s.ledger.AddParticipant(ctx, req.Msg.TripID, req.Msg.Name)
	if err != nil {
		return nil, toConnectError("AddParticipant", err)
	}

	slog.Info("Participant added", "trip_id", snap.Trip.ID, "participants_count", len(snap.Trip.Participants))
	return connect.NewResponse(tripResponse(snap)), nil
}

// RemoveParticipant removes a traveller and every expense they paid.
func (s *TripService) RemoveParticipant(ctx context.Context, req *connect.Request[tripapi.RemoveParticipantRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("RemoveParticipant request received", "trip_id", req.Msg.TripID, "participant_id", req.Msg.ParticipantID)

	snap, err := s.ledger.RemoveParticipant(ctx, req.Msg.TripID, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError("RemoveParticipant", err)
	}

	slog.Info("Participant removed",
		"trip_id", snap.Trip.ID,
		"participants_count", len(snap.Trip.Participants),
		"expenses_count", len(snap.Trip.Expenses),
	)
	return connect.NewResponse(tripResponse(snap)), nil
}

// AddExpense records a payment made by one participant.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[tripapi.AddExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripID,
		"description", req.Msg.Description,
		"amount", req.Msg.Amount,
		"paid_by", req.Msg.PaidBy,
	)

	snap, err := s.ledger.AddExpense(ctx, req.Msg.TripID, ledger.ExpenseInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		Category:    req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	slog.Info("Expense added", "trip_id", snap.Trip.ID, "total_spent", snap.Report.TotalSpent)
	return connect.NewResponse(tripResponse(snap)), nil
}

// RemoveExpense deletes one expense.
func (s *TripService) RemoveExpense(ctx context.Context, req *connect.Request[tripapi.RemoveExpenseRequest]) (*connect.Response[tripapi.TripResponse], error) {
	slog.Info("RemoveExpense request received", "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)

	snap, err := s.ledger.RemoveExpense(ctx, req.Msg.TripID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError("RemoveExpense", err)
	}
	return connect.NewResponse(tripResponse(snap)), nil
}

// GetBalances returns the equal-split report of a trip.
func (s *TripService) GetBalances(ctx context.Context, req *connect.Request[tripapi.GetBalancesRequest]) (*connect.Response[tripapi.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "trip_id", req.Msg.TripID)

	snap, err := s.ledger.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}

	slog.Info("GetBalances successful",
		"trip_id", snap.Trip.ID,
		"people_count", snap.Report.PeopleCount,
		"total_spent", snap.Report.TotalSpent,
	)
	return connect.NewResponse(&tripapi.GetBalancesResponse{
		TripID:   snap.Trip.ID,
		Currency: snap.Trip.Currency,
		Report:   toProtoReport(snap.Report),
		Display:  toDisplay(snap.Report, snap.Trip.Currency),
	}), nil
}
