package api

import "github.com/shopspring/decimal"

// Balance is one counterparty as seen by the requesting user. When OwesUser
// is true the counterparty owes Balance to the user; otherwise the user owes
// it to them.
type Balance struct {
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Balance  decimal.Decimal `json:"balance"`
	OwesUser bool            `json:"owesUser"`
}

type BalanceSummary struct {
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	TotalOwing decimal.Decimal `json:"totalOwing"`
}

// GetBalancesRequest asks for a group's balances from UserID's point of view.
// UserID defaults to the authenticated caller.
type GetBalancesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	UserID  string `json:"userId,omitempty"`
}

type GetBalancesResponse struct {
	UserID   string          `json:"userId"`
	Balances []*Balance      `json:"balances"`
	Summary  *BalanceSummary `json:"summary"`
}

// Debt is an amount one member owes another after netting their shared
// expenses against each other.
type Debt struct {
	FromUserID   string          `json:"fromUserId"`
	FromUserName string          `json:"fromUserName"`
	ToUserID     string          `json:"toUserId"`
	ToUserName   string          `json:"toUserName"`
	Amount       decimal.Decimal `json:"amount"`
}

type GetPairwiseBalancesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetPairwiseBalancesResponse struct {
	Debts []*Debt `json:"debts"`
}
