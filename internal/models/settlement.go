package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment between group members to clear debts.
// It is stored as an Expense paid by the debtor with the creditor as the
// only participant, so it moves both balances toward zero.
type Settlement struct {
	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Note is an optional description for the settlement.
	Note string
}

// Expense converts the settlement into the expense record that carries it.
func (s Settlement) Expense() *Expense {
	description := s.Note
	if description == "" {
		description = fmt.Sprintf("Settlement of %s", s.Amount.StringFixed(2))
	}
	return &Expense{
		GroupID:        s.GroupID,
		Description:    description,
		Amount:         s.Amount,
		PayerID:        s.FromUserID,
		ParticipantIDs: []string{s.ToUserID},
		Kind:           KindSettlement,
	}
}
