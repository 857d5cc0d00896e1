package models

import "github.com/shopspring/decimal"

// ExpenseKind distinguishes shared costs from repayments.
type ExpenseKind string

const (
	KindExpense    ExpenseKind = "expense"
	KindSettlement ExpenseKind = "settlement"
)

// Expense is a payment made by one member on behalf of a set of participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Description says what was paid for (e.g., "Groceries").
	Description string

	// Amount is the total paid, in major units with two decimal places.
	Amount decimal.Decimal

	// PayerID is the user who paid.
	PayerID string

	// ParticipantIDs are the users who benefited, in the order given.
	// Order matters: an uneven split charges the leftover cents to the first one.
	ParticipantIDs []string

	// Kind is KindExpense for shared costs and KindSettlement for repayments.
	Kind ExpenseKind

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
