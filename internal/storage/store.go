// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	// ErrNotFound is wrapped by lookups of records that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped when a write would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")
)

// UserStore holds the user directory.
type UserStore interface {
	// CreateUser persists a new user. ID and CreatedAt are filled in when empty.
	// Returns an error wrapping ErrConflict if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves several users in one round trip.
	// Users that don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns every user ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GroupStore holds groups and their memberships.
type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	RenameGroup(ctx context.Context, groupID, name string) error

	// DeleteGroup removes a group together with all of its expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers appends users to a group, skipping existing members.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error
}

// ExpenseStore holds expense records.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns every expense, oldest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	DeleteExpense(ctx context.Context, expenseID string) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore

	// Close releases any resources held by the store.
	Close() error
}
