package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettlementExpense(t *testing.T) {
	s := Settlement{
		GroupID:    "g1",
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     decimal.RequireFromString("25.5"),
	}

	e := s.Expense()
	assert.Equal(t, "g1", e.GroupID)
	assert.Equal(t, "bob", e.PayerID)
	assert.Equal(t, []string{"alice"}, e.ParticipantIDs)
	assert.Equal(t, KindSettlement, e.Kind)
	assert.Equal(t, "Settlement of 25.50", e.Description)

	s.Note = "rent"
	assert.Equal(t, "rent", s.Expense().Description)
}

func TestGroupMembership(t *testing.T) {
	g := &Group{Members: []string{"a", "b"}}

	assert.True(t, g.HasMember("a"))
	assert.False(t, g.HasMember("c"))
	assert.Equal(t, []string{"c", "d"}, g.MissingMembers("a", "c", "b", "d"))
	assert.Nil(t, g.MissingMembers("a", "b"))
}

func TestNewUser(t *testing.T) {
	u := NewUser("a@example.com", "Alice", "")
	assert.NotEmpty(t, u.ID)
	assert.NotZero(t, u.CreatedAt)
	assert.False(t, u.HasPassword())
}
