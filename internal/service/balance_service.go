package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/api/apiconnect"
	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// BalanceService implements the Connect BalanceService. Balances are never
// stored: every call recomputes them from the group's expenses.
type BalanceService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// NewBalanceService creates a BalanceService. m may be nil.
func NewBalanceService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *BalanceService {
	return &BalanceService{store: store, metrics: m, logger: logger}
}

// GetBalances reports every counterparty's net position as seen by one member.
func (s *BalanceService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	groupID := req.Msg.GroupID
	userID := req.Msg.UserID
	if userID == "" {
		userID = middleware.GetUserID(ctx)
	}
	s.logger.InfoContext(ctx, "GetBalances request received", "group_id", groupID, "user_id", userID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	if userID == "" {
		return nil, toConnectError(fmt.Errorf("userId omitted: %w", auth.ErrMissingToken))
	}

	group, expenses, err := s.loadGroupExpenses(ctx, groupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetBalances failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	if !group.HasMember(userID) {
		err := fmt.Errorf("%w: %s is not in group %s", ledger.ErrUnknownMember, userID, groupID)
		s.logger.WarnContext(ctx, "GetBalances rejected", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	balances, err := s.aggregate(ctx, expenses)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetBalances failed - aggregation error", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	entries, err := ledger.Format(ctx, balances, userID, nameResolver(s.store))
	if err != nil {
		s.logger.ErrorContext(ctx, "GetBalances failed - formatting error", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Balance, len(entries))
	for i, e := range entries {
		out[i] = &api.Balance{
			UserID:   e.CounterpartyID,
			UserName: e.CounterpartyName,
			Balance:  e.Amount,
			OwesUser: e.OwesViewpointUser,
		}
	}
	summary := ledger.Summarize(entries)

	s.logger.InfoContext(ctx, "GetBalances successful",
		"group_id", groupID,
		"user_id", userID,
		"expenses_count", len(expenses),
		"entries_count", len(out),
	)
	return connect.NewResponse(&api.GetBalancesResponse{
		UserID:   userID,
		Balances: out,
		Summary: &api.BalanceSummary{
			TotalOwed:  summary.TotalOwed,
			TotalOwing: summary.TotalOwing,
		},
	}), nil
}

// GetPairwiseBalances reports who owes whom after netting each pair of members.
func (s *BalanceService) GetPairwiseBalances(ctx context.Context, req *connect.Request[api.GetPairwiseBalancesRequest]) (*connect.Response[api.GetPairwiseBalancesResponse], error) {
	groupID := req.Msg.GroupID
	s.logger.InfoContext(ctx, "GetPairwiseBalances request received", "group_id", groupID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	_, expenses, err := s.loadGroupExpenses(ctx, groupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetPairwiseBalances failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	debts, err := ledger.Pairwise(toLedgerExpenses(expenses))
	if err != nil {
		s.logger.ErrorContext(ctx, "GetPairwiseBalances failed - netting error", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	var ids []string
	for _, d := range debts {
		ids = append(ids, d.From, d.To)
	}
	names, err := nameResolver(s.store)(ctx, dedupe(ids))
	if err != nil {
		s.logger.ErrorContext(ctx, "GetPairwiseBalances failed - name lookup", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Debt, len(debts))
	for i, d := range debts {
		out[i] = &api.Debt{
			FromUserID:   d.From,
			FromUserName: names[d.From],
			ToUserID:     d.To,
			ToUserName:   names[d.To],
			Amount:       d.Amount,
		}
	}

	s.logger.InfoContext(ctx, "GetPairwiseBalances successful", "group_id", groupID, "debts_count", len(out))
	return connect.NewResponse(&api.GetPairwiseBalancesResponse{Debts: out}), nil
}

// loadGroupExpenses fetches a group and its expenses concurrently. The group
// lookup doubles as the existence check.
func (s *BalanceService) loadGroupExpenses(ctx context.Context, groupID string) (*models.Group, []*models.Expense, error) {
	var (
		group    *models.Group
		expenses []*models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = s.store.GetGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByGroup(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return group, expenses, nil
}

func (s *BalanceService) aggregate(ctx context.Context, expenses []*models.Expense) (ledger.Balances, error) {
	balances, remainders, err := ledger.Aggregate(toLedgerExpenses(expenses))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAggregation(len(expenses), len(remainders))
	for _, r := range remainders {
		s.logger.DebugContext(ctx, "Uneven split", "expense_id", r.ExpenseID, "remainder", r.Remainder, "assigned_to", r.AssignedTo)
	}
	return balances, nil
}
