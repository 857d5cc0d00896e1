package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/api/apiconnect"
	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// UserService implements the Connect UserService.
type UserService struct {
	users  storage.UserStore
	logger *slog.Logger
}

var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// NewUserService creates a new UserService backed by the user directory.
func NewUserService(users storage.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser adds a directory entry without login credentials.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	s.logger.InfoContext(ctx, "CreateUser request received", "email", req.Msg.Email)

	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	user := models.NewUser(auth.NormalizeEmail(req.Msg.Email), strings.TrimSpace(req.Msg.Name), "")
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "CreateUser failed", "email", user.Email, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.InfoContext(ctx, "User created", "user_id", user.ID)
	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.users.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "GetUser failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "ListUsers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.User, len(users))
	for i, user := range users {
		out[i] = toAPIUser(user)
	}

	s.logger.DebugContext(ctx, "ListUsers successful", "count", len(out))
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}
