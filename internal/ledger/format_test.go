package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingResolver struct {
	names map[string]string
	calls [][]string
	err   error
}

func (r *recordingResolver) resolve(_ context.Context, ids []string) (map[string]string, error) {
	r.calls = append(r.calls, ids)
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

var directory = map[string]string{"A": "Alice", "B": "Bob", "C": "Charlie", "D": "Diana"}

func TestFormat_SingleExpenseFromViewpointB(t *testing.T) {
	balances, _, err := Aggregate([]Expense{
		{ID: "e1", PayerID: "A", ParticipantIDs: []string{"A", "B", "C"}, Amount: d("90")},
	})
	require.NoError(t, err)

	resolver := &recordingResolver{names: directory}
	entries, err := Format(context.Background(), balances, "B", resolver.resolve)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].CounterpartyID)
	assert.Equal(t, "Alice", entries[0].CounterpartyName)
	assert.True(t, d("60").Equal(entries[0].Amount))
	assert.False(t, entries[0].OwesViewpointUser)

	assert.Equal(t, "C", entries[1].CounterpartyID)
	assert.True(t, d("30").Equal(entries[1].Amount))
	assert.True(t, entries[1].OwesViewpointUser)

	require.Len(t, resolver.calls, 1)
	assert.Equal(t, []string{"A", "C"}, resolver.calls[0])
}

func TestFormat_ExcludesViewpointAndZeroBalances(t *testing.T) {
	balances := Balances{"A": d("10"), "B": d("-10"), "C": d("0")}

	resolver := &recordingResolver{names: directory}
	entries, err := Format(context.Background(), balances, "A", resolver.resolve)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].CounterpartyID)
	for _, e := range entries {
		assert.NotEqual(t, "A", e.CounterpartyID)
		assert.False(t, e.Amount.IsNegative())
	}
	assert.Equal(t, [][]string{{"B"}}, resolver.calls)
}

func TestFormat_ViewpointNotInGroup(t *testing.T) {
	balances := Balances{"A": d("5"), "B": d("-5")}

	resolver := &recordingResolver{names: directory}
	entries, err := Format(context.Background(), balances, "Z", resolver.resolve)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFormat_NoCounterpartiesSkipsResolver(t *testing.T) {
	resolver := &recordingResolver{names: directory}

	entries, err := Format(context.Background(), Balances{"A": d("0")}, "B", resolver.resolve)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
	assert.Empty(t, resolver.calls)

	entries, err = Format(context.Background(), Balances{}, "A", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFormat_UnknownMember(t *testing.T) {
	balances := Balances{"A": d("10"), "X": d("-10")}

	resolver := &recordingResolver{names: directory}
	entries, err := Format(context.Background(), balances, "A", resolver.resolve)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMember))
	assert.Contains(t, err.Error(), "X")
	assert.Nil(t, entries)
}

func TestFormat_ResolverFailure(t *testing.T) {
	boom := errors.New("directory unavailable")
	resolver := &recordingResolver{err: boom}

	_, err := Format(context.Background(), Balances{"A": d("1"), "B": d("-1")}, "A", resolver.resolve)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestSummarize(t *testing.T) {
	entries := []Entry{
		{CounterpartyID: "A", Amount: d("60"), OwesViewpointUser: false},
		{CounterpartyID: "C", Amount: d("30"), OwesViewpointUser: true},
		{CounterpartyID: "D", Amount: d("12.5"), OwesViewpointUser: true},
	}

	s := Summarize(entries)
	assert.True(t, d("42.5").Equal(s.TotalOwed), "owed = %s", s.TotalOwed)
	assert.True(t, d("60").Equal(s.TotalOwing), "owing = %s", s.TotalOwing)

	empty := Summarize(nil)
	assert.True(t, empty.TotalOwed.IsZero())
	assert.True(t, empty.TotalOwing.IsZero())
}
