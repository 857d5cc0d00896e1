package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/api"
)

func TestAuthService(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct horse",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, reg.Msg.Token)
	assert.Equal(t, "Alice", reg.Msg.User.Name)

	t.Run("register duplicate", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "ALICE@example.com", Name: "Alice", Password: "another password",
		}))
		assertCode(t, connect.CodeAlreadyExists, err)
	})

	t.Run("register weak password", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", Name: "Bob", Password: "short",
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("login", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "correct horse",
		}))
		require.NoError(t, err)
		assert.Equal(t, reg.Msg.User.ID, resp.Msg.User.ID)

		claims, err := env.jwt.Validate(resp.Msg.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.Msg.User.ID, claims.UserID)
	})

	t.Run("login wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "wrong password",
		}))
		assertCode(t, connect.CodeUnauthenticated, err)
	})

	t.Run("directory user cannot log in", func(t *testing.T) {
		env.createUser(t, "carol")
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "carol@example.com", Password: "anything at all",
		}))
		assertCode(t, connect.CodeUnauthenticated, err)
	})

	t.Run("GetCurrentUser", func(t *testing.T) {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		withToken(req, reg.Msg.Token)
		resp, err := env.auth.GetCurrentUser(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", resp.Msg.User.Email)
	})

	t.Run("GetCurrentUser anonymous", func(t *testing.T) {
		_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		assertCode(t, connect.CodeUnauthenticated, err)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := connect.NewRequest(&api.GetCurrentUserRequest{})
		withToken(req, "garbage")
		_, err := env.auth.GetCurrentUser(ctx, req)
		assertCode(t, connect.CodeUnauthenticated, err)
	})
}
