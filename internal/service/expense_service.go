package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/api/apiconnect"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// ExpenseStore is the storage the expense service needs.
type ExpenseStore interface {
	storage.GroupStore
	storage.ExpenseStore
}

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store     ExpenseStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates an ExpenseService. publisher may be
// events.NopPublisher{} and m may be nil.
func NewExpenseService(store ExpenseStore, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CreateExpense records an expense paid by one group member for others.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	s.logger.InfoContext(ctx, "CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"payer_id", req.Msg.PayerID,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		GroupID:        req.Msg.GroupID,
		Description:    strings.TrimSpace(req.Msg.Description),
		Amount:         req.Msg.Amount,
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: req.Msg.ParticipantIDs,
		Kind:           models.KindExpense,
	}
	if err := s.record(ctx, expense); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// RecordSettlement records a repayment from one member to another.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	s.logger.InfoContext(ctx, "RecordSettlement request received",
		"group_id", req.Msg.GroupID,
		"from_user_id", req.Msg.FromUserID,
		"to_user_id", req.Msg.ToUserID,
		"amount", req.Msg.Amount,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	settlement := models.Settlement{
		GroupID:    req.Msg.GroupID,
		FromUserID: req.Msg.FromUserID,
		ToUserID:   req.Msg.ToUserID,
		Amount:     req.Msg.Amount,
		Note:       strings.TrimSpace(req.Msg.Note),
	}
	expense := settlement.Expense()
	if err := s.record(ctx, expense); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RecordSettlementResponse{Expense: toAPIExpense(expense)}), nil
}

// record validates, stores and announces an expense.
func (s *ExpenseService) record(ctx context.Context, expense *models.Expense) error {
	if err := toLedgerExpense(expense).Validate(); err != nil {
		s.logger.WarnContext(ctx, "Expense rejected", "group_id", expense.GroupID, "error", err)
		return err
	}

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load group", "group_id", expense.GroupID, "error", err)
		return err
	}
	if missing := group.MissingMembers(append([]string{expense.PayerID}, expense.ParticipantIDs...)...); len(missing) > 0 {
		err := fmt.Errorf("%w: %s not in group %s", ledger.ErrUnknownMember, strings.Join(dedupe(missing), ", "), group.ID)
		s.logger.WarnContext(ctx, "Expense rejected", "group_id", group.ID, "error", err)
		return err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store expense", "group_id", group.ID, "error", err)
		return err
	}
	s.metrics.ExpenseRecorded(string(expense.Kind))
	s.logger.InfoContext(ctx, "Expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"kind", expense.Kind,
	)

	// The expense is stored; a broker outage must not fail the request.
	err = s.publisher.PublishExpenseRecorded(ctx, events.NewExpenseRecorded(expense, middleware.GetUserID(ctx)))
	s.metrics.EventPublished(err)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish expense event", "expense_id", expense.ID, "error", err)
	}
	return nil
}

// ListExpenses lists a group's expenses, or all expenses when no group is given.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	var (
		expenses []*models.Expense
		err      error
	)
	if req.Msg.GroupID == "" {
		expenses, err = s.store.ListExpenses(ctx)
	} else if _, err = s.store.GetGroup(ctx, req.Msg.GroupID); err == nil {
		expenses, err = s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, expense := range expenses {
		out[i] = toAPIExpense(expense)
	}

	s.logger.DebugContext(ctx, "ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(out))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense or settlement.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	s.logger.InfoContext(ctx, "DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		s.logger.ErrorContext(ctx, "DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "Expense deleted", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
