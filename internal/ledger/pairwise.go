package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Debt is money From owes To after netting every expense between the two.
type Debt struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// pair is an unordered member pair stored as (lo, hi) with lo < hi.
type pair struct {
	lo, hi string
}

// Pairwise computes two-party debts: every participant other than the payer
// owes the payer its share, and debts running both ways between the same
// two members cancel out. Shares follow the same policy as Aggregate.
//
// Debts are not simplified across more than two members. The result is
// ordered by From, then To.
func Pairwise(expenses []Expense) ([]Debt, error) {
	// Positive net[p] means p.lo owes p.hi.
	net := make(map[pair]decimal.Decimal)

	owe := func(from, to string, amount decimal.Decimal) {
		if from < to {
			p := pair{from, to}
			net[p] = net[p].Add(amount)
			return
		}
		p := pair{to, from}
		net[p] = net[p].Sub(amount)
	}

	for _, e := range expenses {
		shares, _, err := e.shares()
		if err != nil {
			return nil, err
		}
		for i, participant := range e.ParticipantIDs {
			if participant == e.PayerID {
				continue
			}
			owe(participant, e.PayerID, shares[i])
		}
	}

	debts := make([]Debt, 0, len(net))
	for p, amount := range net {
		switch {
		case amount.IsPositive():
			debts = append(debts, Debt{From: p.lo, To: p.hi, Amount: amount})
		case amount.IsNegative():
			debts = append(debts, Debt{From: p.hi, To: p.lo, Amount: amount.Neg()})
		}
	}

	sort.Slice(debts, func(i, j int) bool {
		if debts[i].From != debts[j].From {
			return debts[i].From < debts[j].From
		}
		return debts[i].To < debts[j].To
	})

	return debts, nil
}
