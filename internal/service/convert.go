package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/ledger"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/pkg/tripapi"
)

// toConnectError logs a failed operation and maps it to a Connect error code.
func toConnectError(op string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrEmptyDescription),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrMissingPayer),
		errors.Is(err, ledger.ErrUnknownPayer):
		code = connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrTripNotFound),
		errors.Is(err, ledger.ErrParticipantNotFound),
		errors.Is(err, ledger.ErrExpenseNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ledger.ErrNoActiveTrip):
		code = connect.CodeFailedPrecondition
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
	slog.Warn(op+" rejected", "code", code, "error", err)
	return connect.NewError(code, err)
}

func tripResponse(snap ledger.Snapshot) *tripapi.TripResponse {
	return &tripapi.TripResponse{
		Trip:    toProtoTrip(snap.Trip),
		Report:  toProtoReport(snap.Report),
		Display: toDisplay(snap.Report, snap.Trip.Currency),
	}
}

func toProtoTrip(trip *models.Trip) *tripapi.Trip {
	participants := make([]tripapi.Participant, len(trip.Participants))
	for i, p := range trip.Participants {
		participants[i] = tripapi.Participant{ID: p.ID, Name: p.Name}
	}

	expenses := make([]tripapi.Expense, len(trip.Expenses))
	for i, e := range trip.Expenses {
		expenses[i] = tripapi.Expense{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			PayerName:   trip.PayerName(e),
			Category:    e.Category,
			CreatedAt:   e.CreatedAt,
		}
	}

	return &tripapi.Trip{
		ID:           trip.ID,
		Name:         trip.Name,
		Currency:     trip.Currency,
		Participants: participants,
		Expenses:     expenses,
		CreatedAt:    trip.CreatedAt,
	}
}

func toProtoReport(r calculator.BalanceReport) *tripapi.BalanceReport {
	rows := make([]tripapi.ParticipantBalance, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = tripapi.ParticipantBalance{
			ID:        row.ID,
			Name:      row.Name,
			PaidTotal: row.PaidTotal,
			ShouldPay: row.ShouldPay,
			Balance:   row.Balance,
		}
	}
	return &tripapi.BalanceReport{
		PeopleCount:  r.PeopleCount,
		ExpenseCount: r.ExpenseCount,
		TotalSpent:   r.TotalSpent,
		PerPerson:    r.PerPerson,
		Rows:         rows,
		Settled:      r.Settled(),
	}
}

func toDisplay(r calculator.BalanceReport, currency string) *tripapi.ReportDisplay {
	rows := make([]tripapi.DisplayRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = tripapi.DisplayRow{
			Name:      row.Name,
			PaidTotal: money.Format(row.PaidTotal, currency),
			ShouldPay: money.Format(row.ShouldPay, currency),
			Balance:   money.FormatSigned(row.Balance, currency),
		}
	}
	return &tripapi.ReportDisplay{
		TotalSpent: money.Format(r.TotalSpent, currency),
		PerPerson:  money.Format(r.PerPerson, currency),
		Rows:       rows,
	}
}
