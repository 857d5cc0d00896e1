package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry is one counterparty as seen from the viewpoint user.
type Entry struct {
	CounterpartyID   string
	CounterpartyName string
	// Amount is never negative.
	Amount decimal.Decimal
	// OwesViewpointUser is true when the counterparty is a net debtor.
	OwesViewpointUser bool
}

// NameResolver looks up display names for a batch of member ids.
// Ids without a user are left out of the returned map.
type NameResolver func(ctx context.Context, ids []string) (map[string]string, error)

// Format projects balances onto viewpointUserID.
//
// Each entry carries the counterparty's group-wide net position, not a
// two-party debt: with more than two members sharing costs this is an
// approximation of who owes whom. Use Pairwise for real two-party netting.
//
// Members with a zero balance and the viewpoint user itself are skipped.
// resolve is called at most once, with the ids that end up in the output,
// and never when there are none. An id it cannot name fails the call with
// ErrUnknownMember. Entries are ordered by counterparty id.
func Format(ctx context.Context, balances Balances, viewpointUserID string, resolve NameResolver) ([]Entry, error) {
	var ids []string
	for _, id := range balances.Members() {
		if id == viewpointUserID || balances[id].IsZero() {
			continue
		}
		ids = append(ids, id)
	}

	entries := make([]Entry, 0, len(ids))
	if len(ids) == 0 {
		return entries, nil
	}

	if resolve == nil {
		return nil, errors.New("no name resolver configured")
	}
	names, err := resolve(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member names: %w", err)
	}

	for _, id := range ids {
		name, ok := names[id]
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}

		net := balances[id]
		entries = append(entries, Entry{
			CounterpartyID:    id,
			CounterpartyName:  name,
			Amount:            net.Abs(),
			OwesViewpointUser: net.IsNegative(),
		})
	}

	return entries, nil
}

// Summary totals a viewpoint user's entries.
type Summary struct {
	// TotalOwed is what counterparties owe the viewpoint user.
	TotalOwed decimal.Decimal
	// TotalOwing is what the viewpoint user owes counterparties.
	TotalOwing decimal.Decimal
}

// Summarize adds up formatted entries by direction.
func Summarize(entries []Entry) Summary {
	s := Summary{TotalOwed: decimal.Zero, TotalOwing: decimal.Zero}
	for _, e := range entries {
		if e.OwesViewpointUser {
			s.TotalOwed = s.TotalOwed.Add(e.Amount)
		} else {
			s.TotalOwing = s.TotalOwing.Add(e.Amount)
		}
	}
	return s
}
