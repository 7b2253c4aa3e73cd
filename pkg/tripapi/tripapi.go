// Package tripapi defines the messages of the tripledger.v1.TripService API.
//
// Messages travel as JSON over the Connect protocol; see package tripapiconnect
// for handlers and clients. Amounts are full-precision numbers; the Display
// blocks carry the same values rounded for humans.
package tripapi

// Trip is a trip with everything it owns.
type Trip struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Currency     string        `json:"currency"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
	CreatedAt    int64         `json:"created_at"`
}

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paid_by"`
	// PayerName is "Unknown" if the payer is no longer part of the trip.
	PayerName string `json:"payer_name"`
	Category  string `json:"category,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// BalanceReport mirrors the equal-split report of a trip.
type BalanceReport struct {
	PeopleCount  int                  `json:"people_count"`
	ExpenseCount int                  `json:"expense_count"`
	TotalSpent   float64              `json:"total_spent"`
	PerPerson    float64              `json:"per_person"`
	Rows         []ParticipantBalance `json:"rows"`
	Settled      bool                 `json:"settled"`
}

type ParticipantBalance struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PaidTotal float64 `json:"paid_total"`
	ShouldPay float64 `json:"should_pay"`
	Balance   float64 `json:"balance"`
}

// ReportDisplay is BalanceReport formatted with the trip currency, e.g. "50.00 USD".
type ReportDisplay struct {
	TotalSpent string       `json:"total_spent"`
	PerPerson  string       `json:"per_person"`
	Rows       []DisplayRow `json:"rows"`
}

type DisplayRow struct {
	Name      string `json:"name"`
	PaidTotal string `json:"paid_total"`
	ShouldPay string `json:"should_pay"`
	// Balance always carries a sign: "+50.00 USD", "-50.00 USD".
	Balance string `json:"balance"`
}

// TripResponse is returned by every operation that changes or reads a single trip.
type TripResponse struct {
	Trip    *Trip          `json:"trip"`
	Report  *BalanceReport `json:"report"`
	Display *ReportDisplay `json:"display"`
}

type TripSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Currency         string  `json:"currency"`
	TotalSpent       float64 `json:"total_spent"`
	TotalSpentText   string  `json:"total_spent_text"`
	ParticipantCount int     `json:"participant_count"`
	ExpenseCount     int     `json:"expense_count"`
	Active           bool    `json:"active"`
	CreatedAt        int64   `json:"created_at"`
}

type CreateTripRequest struct {
	Name string `json:"name"`
	// Currency defaults to USD when blank.
	Currency string `json:"currency,omitempty"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []TripSummary `json:"trips"`
}

type SelectTripRequest struct {
	TripID string `json:"trip_id"`
}

// GetTripRequest reads a trip; an empty TripID reads the active trip.
type GetTripRequest struct {
	TripID string `json:"trip_id,omitempty"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id,omitempty"`
}

type DeleteTripResponse struct{}

type SetCurrencyRequest struct {
	TripID   string `json:"trip_id,omitempty"`
	Currency string `json:"currency"`
}

type AddParticipantRequest struct {
	TripID string `json:"trip_id,omitempty"`
	Name   string `json:"name"`
}

type RemoveParticipantRequest struct {
	TripID        string `json:"trip_id,omitempty"`
	ParticipantID string `json:"participant_id"`
}

type AddExpenseRequest struct {
	TripID      string  `json:"trip_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paid_by"`
	Category    string  `json:"category,omitempty"`
}

type RemoveExpenseRequest struct {
	TripID    string `json:"trip_id,omitempty"`
	ExpenseID string `json:"expense_id"`
}

type GetBalancesRequest struct {
	TripID string `json:"trip_id,omitempty"`
}

type GetBalancesResponse struct {
	TripID   string         `json:"trip_id"`
	Currency string         `json:"currency"`
	Report   *BalanceReport `json:"report"`
	Display  *ReportDisplay `json:"display"`
}
