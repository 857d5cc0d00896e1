package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/api/apiconnect"
	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.ExpenseRecorded
	err    error
}

func (p *recordingPublisher) PublishExpenseRecorded(_ context.Context, event *events.ExpenseRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) failWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *recordingPublisher) published() []*events.ExpenseRecorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.ExpenseRecorded(nil), p.events...)
}

type testEnv struct {
	users     apiconnect.UserServiceClient
	auth      apiconnect.AuthServiceClient
	groups    apiconnect.GroupServiceClient
	expenses  apiconnect.ExpenseServiceClient
	balances  apiconnect.BalanceServiceClient
	publisher *recordingPublisher
	jwt       *auth.JWTManager
}

// setupTestServer serves every service over httptest against a fresh SQLite file.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	publisher := &recordingPublisher{}

	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store, logger), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, logger), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, publisher, m, logger), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, m, logger), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		users:     apiconnect.NewUserServiceClient(http.DefaultClient, server.URL),
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:    apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:  apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		balances:  apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
		jwt:       jwtManager,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) string {
	t.Helper()
	resp, err := e.users.CreateUser(context.Background(), connect.NewRequest(&api.CreateUserRequest{
		Name:  name,
		Email: name + "@example.com",
	}))
	require.NoError(t, err)
	return resp.Msg.User.ID
}

func (e *testEnv) createGroup(t *testing.T, name string, members ...string) string {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	require.NoError(t, err)
	return resp.Msg.Group.ID
}

func (e *testEnv) addExpense(t *testing.T, groupID, payerID, amount string, participantIDs ...string) *api.Expense {
	t.Helper()
	resp, err := e.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupID:        groupID,
		Description:    "Expense",
		Amount:         decimal.RequireFromString(amount),
		PayerID:        payerID,
		ParticipantIDs: participantIDs,
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "got %s, want %s", got, want)
}

func withToken(req interface{ Header() http.Header }, token string) {
	req.Header().Set("Authorization", "Bearer "+token)
}
