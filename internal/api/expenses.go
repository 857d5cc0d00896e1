package api

import "github.com/shopspring/decimal"

type Expense struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"groupId"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payerId"`
	ParticipantIDs []string        `json:"participantIds"`
	Kind           string          `json:"kind"`
	CreatedAt      int64           `json:"createdAt"`
}

// CreateExpenseRequest records a shared cost. Amount must be positive with at
// most two decimal places; participants are charged in the order given.
type CreateExpenseRequest struct {
	GroupID        string          `json:"groupId" validate:"required"`
	Description    string          `json:"description" validate:"required,max=200"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payerId" validate:"required"`
	ParticipantIDs []string        `json:"participantIds" validate:"required,min=1,dive,required"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type RecordSettlementRequest struct {
	GroupID    string          `json:"groupId" validate:"required"`
	FromUserID string          `json:"fromUserId" validate:"required"`
	ToUserID   string          `json:"toUserId" validate:"required,nefield=FromUserID"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty" validate:"max=200"`
}

type RecordSettlementResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest lists one group's expenses, or every expense when
// GroupID is empty.
type ListExpensesRequest struct {
	GroupID string `json:"groupId,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId" validate:"required"`
}

type DeleteExpenseResponse struct{}
