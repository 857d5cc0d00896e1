package service

import (
	"context"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// toAPIGroup fills member names from users; unknown members keep an empty name.
func toAPIGroup(group *models.Group, users map[string]*models.User) *api.Group {
	members := make([]*api.Member, len(group.Members))
	for i, id := range group.Members {
		member := &api.Member{UserID: id}
		if user, ok := users[id]; ok {
			member.Name = user.Name
		}
		members[i] = member
	}
	return &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		Members:   members,
		CreatedAt: group.CreatedAt,
	}
}

func toAPIExpense(expense *models.Expense) *api.Expense {
	return &api.Expense{
		ID:             expense.ID,
		GroupID:        expense.GroupID,
		Description:    expense.Description,
		Amount:         expense.Amount,
		PayerID:        expense.PayerID,
		ParticipantIDs: expense.ParticipantIDs,
		Kind:           string(expense.Kind),
		CreatedAt:      expense.CreatedAt,
	}
}

func toLedgerExpense(expense *models.Expense) ledger.Expense {
	return ledger.Expense{
		ID:             expense.ID,
		GroupID:        expense.GroupID,
		PayerID:        expense.PayerID,
		ParticipantIDs: expense.ParticipantIDs,
		Amount:         expense.Amount,
	}
}

func toLedgerExpenses(expenses []*models.Expense) []ledger.Expense {
	out := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toLedgerExpense(e)
	}
	return out
}

// nameResolver resolves display names with one batch directory lookup.
func nameResolver(users storage.UserStore) ledger.NameResolver {
	return func(ctx context.Context, ids []string) (map[string]string, error) {
		found, err := users.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(found))
		for id, user := range found {
			names[id] = user.Name
		}
		return names, nil
	}
}
