// Package ledger turns raw expense records into net balances between the
// members of a group.
//
// Everything here is a pure function over data the caller already fetched:
// there is no storage, no logging and no shared state, so any number of
// computations may run concurrently. Balances are always rebuilt from the
// full expense history; nothing is kept between calls.
//
// Amounts are decimals held to two minor-unit digits. An expense is split in
// equal shares of whole cents and the cents that do not divide evenly are
// charged to the first participant in the given order (see Split), which keeps
// the sum of a balance map at exactly zero.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Expense is one payment made by PayerID on behalf of ParticipantIDs.
// The payer may or may not be a participant.
type Expense struct {
	ID             string
	GroupID        string
	PayerID        string
	ParticipantIDs []string
	Amount         decimal.Decimal
}

// Validate checks that the expense can be folded into a balance map.
// Failures wrap ErrInvalidExpense.
func (e Expense) Validate() error {
	if e.PayerID == "" {
		return invalidExpense(e.ID, "payer is required")
	}
	if len(e.ParticipantIDs) == 0 {
		return invalidExpense(e.ID, "at least one participant is required")
	}
	for i, p := range e.ParticipantIDs {
		if p == "" {
			return invalidExpense(e.ID, "participant %d has an empty id", i)
		}
	}
	if err := CheckAmount(e.Amount); err != nil {
		return invalidExpense(e.ID, "%v", err)
	}
	return nil
}

// shares returns each participant's share, aligned with ParticipantIDs.
func (e Expense) shares() ([]decimal.Decimal, decimal.Decimal, error) {
	if err := e.Validate(); err != nil {
		return nil, decimal.Zero, err
	}
	shares, remainder, err := Split(e.Amount, len(e.ParticipantIDs))
	if err != nil {
		return nil, decimal.Zero, invalidExpense(e.ID, "%v", err)
	}
	return shares, remainder, nil
}

// Balances maps a member id to its signed net position.
// Positive means the member is owed money overall, negative means it owes.
// A missing member has a zero balance.
type Balances map[string]decimal.Decimal

// Get returns the member's balance, zero when absent.
func (b Balances) Get(memberID string) decimal.Decimal {
	if v, ok := b[memberID]; ok {
		return v
	}
	return decimal.Zero
}

// Sum adds up every balance. It is zero for any map produced by Aggregate.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b {
		sum = sum.Add(v)
	}
	return sum
}

// Members returns the member ids in ascending order.
func (b Balances) Members() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b Balances) add(memberID string, amount decimal.Decimal) {
	b[memberID] = b.Get(memberID).Add(amount)
}

// Aggregate folds expenses into per-member net balances.
//
// The payer of each expense is credited with the full amount and every
// participant is debited its share. The result does not depend on the order
// of expenses. Splits that did not divide evenly are reported as
// DivisionRemainder values; they are informational only.
//
// If any expense is invalid the whole call fails with ErrInvalidExpense and no
// balances are returned.
func Aggregate(expenses []Expense) (Balances, []DivisionRemainder, error) {
	balances := make(Balances)
	var remainders []DivisionRemainder

	for _, e := range expenses {
		shares, remainder, err := e.shares()
		if err != nil {
			return nil, nil, err
		}

		balances.add(e.PayerID, e.Amount)
		for i, participant := range e.ParticipantIDs {
			balances.add(participant, shares[i].Neg())
		}

		if !remainder.IsZero() {
			remainders = append(remainders, DivisionRemainder{
				ExpenseID:    e.ID,
				Amount:       e.Amount,
				Participants: len(e.ParticipantIDs),
				Remainder:    remainder,
				AssignedTo:   e.ParticipantIDs[0],
			})
		}
	}

	return balances, remainders, nil
}
