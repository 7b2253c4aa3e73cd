package calculator

import (
	"math"

	"github.com/mmynk/tripledger/internal/models"
)

// settledTolerance is half of the smallest displayed unit (two decimals).
const settledTolerance = 0.005

// ParticipantBalance represents the balance information for one participant.
type ParticipantBalance struct {
	ID        string
	Name      string
	PaidTotal float64 // Sum of the expenses this participant paid
	ShouldPay float64 // Equal share of the trip total
	Balance   float64 // Positive = owed money, Negative = owes money
}

// BalanceReport is the result of Compute for one trip.
type BalanceReport struct {
	PeopleCount  int
	ExpenseCount int
	TotalSpent   float64
	PerPerson    float64
	Rows         []ParticipantBalance // Same order as the input participants
}

// Settled reports whether every balance rounds to zero at two decimals.
func (r BalanceReport) Settled() bool {
	for _, row := range r.Rows {
		if math.Abs(row.Balance) >= settledTolerance {
			return false
		}
	}
	return true
}

// Compute builds the equal-split balance report for a trip.
//
// Algorithm:
// - total_spent = sum of all expense amounts
// - per_person = total_spent / people_count (0 when there is nobody to split with)
// - paid_total = sum of the expenses whose payer is the participant
// - balance = paid_total - per_person
//
// An expense whose payer is not in participants still counts towards the total but
// towards no participant's paid_total. Compute never rounds and never mutates its inputs.
func Compute(participants []models.Participant, expenses []models.Expense) BalanceReport {
	totalSpent := 0.0
	paid := make(map[string]float64, len(participants))
	for _, e := range expenses {
		totalSpent += e.Amount
		paid[e.PaidBy] += e.Amount
	}

	peopleCount := len(participants)
	perPerson := 0.0
	if peopleCount > 0 {
		perPerson = totalSpent / float64(peopleCount)
	}

	rows := make([]ParticipantBalance, 0, peopleCount)
	for _, p := range participants {
		paidTotal := paid[p.ID]
		rows = append(rows, ParticipantBalance{
			ID:        p.ID,
			Name:      p.Name,
			PaidTotal: paidTotal,
			ShouldPay: perPerson,
			Balance:   paidTotal - perPerson,
		})
	}

	return BalanceReport{
		PeopleCount:  peopleCount,
		ExpenseCount: len(expenses),
		TotalSpent:   totalSpent,
		PerPerson:    perPerson,
		Rows:         rows,
	}
}
