// Package models defines the core domain models for tripledger.
//
// # Models
//
//   - Trip: a shared ledger scoping one set of participants and expenses under one currency
//   - Participant: a traveller who can pay for expenses
//   - Expense: a single payment made by one participant on behalf of the trip
//
// # Design Principles
//
// 1. **Reject at construction, trust thereafter**: NewParticipant and NewExpense validate
// their input; everything downstream (storage, calculator) assumes well-formed values
// 2. **Exclusive ownership**: a Trip owns its Participants and Expenses; nothing outlives its Trip
// 3. **Avoid circular references**: Expenses point at their payer by ID string, not by pointer
// 4. **No rounding**: amounts are kept at full precision; rounding is a display concern
package models
