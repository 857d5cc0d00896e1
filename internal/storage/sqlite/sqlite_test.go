package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUsers(t *testing.T, store *SQLiteStore, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		user := &models.User{Name: name, Email: name + "@example.com"}
		require.NoError(t, store.CreateUser(context.Background(), user))
		ids[i] = user.ID
	}
	return ids
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
		require.NoError(t, store.CreateUser(ctx, user))
		assert.NotEmpty(t, user.ID)
		assert.NotZero(t, user.CreatedAt)

		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Name: "Other", Email: "alice@example.com"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrConflict))
	})

	t.Run("user without password round trips", func(t *testing.T) {
		user := &models.User{Name: "Bob", Email: "bob@example.com"}
		require.NoError(t, store.CreateUser(ctx, user))

		got, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, got.HasPassword())
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
		_, err = store.GetUserByEmail(ctx, "nope@example.com")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("GetUsersByIDs omits unknown ids", func(t *testing.T) {
		alice, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, "ghost"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[alice.ID].Name)

		empty, err := store.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("ListUsers orders by name", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Alice", users[0].Name)
		assert.Equal(t, "Bob", users[1].Name)
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := createUsers(t, store, "alice", "bob", "carol")

	group := &models.Group{Name: "Flat", Members: []string{ids[1], ids[0]}}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)

	t.Run("GetGroup keeps member order", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flat", got.Name)
		assert.Equal(t, []string{ids[1], ids[0]}, got.Members)
	})

	t.Run("AddGroupMembers appends and skips existing", func(t *testing.T) {
		require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{ids[0], ids[2]}))
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{ids[1], ids[0], ids[2]}, got.Members)

		err = store.AddGroupMembers(ctx, "missing", []string{ids[0]})
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("member must be an existing user", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Ghosts", Members: []string{"ghost"}})
		assert.Error(t, err)
	})

	t.Run("RenameGroup", func(t *testing.T) {
		require.NoError(t, store.RenameGroup(ctx, group.ID, "Home"))
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Home", got.Name)

		err = store.RenameGroup(ctx, "missing", "x")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("ListGroups populates members", func(t *testing.T) {
		groups, err := store.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Len(t, groups[0].Members, 3)
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := createUsers(t, store, "alice", "bob", "carol")

	group := &models.Group{Name: "Trip", Members: ids}
	require.NoError(t, store.CreateGroup(ctx, group))
	other := &models.Group{Name: "Other", Members: ids[:2]}
	require.NoError(t, store.CreateGroup(ctx, other))

	expense := &models.Expense{
		GroupID:        group.ID,
		Description:    "Dinner",
		Amount:         decimal.RequireFromString("90.10"),
		PayerID:        ids[0],
		ParticipantIDs: []string{ids[2], ids[0], ids[1]},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	assert.Equal(t, models.KindExpense, expense.Kind)

	settlement := models.Settlement{GroupID: group.ID, FromUserID: ids[1], ToUserID: ids[0], Amount: decimal.RequireFromString("5")}
	require.NoError(t, store.CreateExpense(ctx, settlement.Expense()))

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		GroupID: other.ID, Description: "Taxi", Amount: decimal.RequireFromString("12"),
		PayerID: ids[1], ParticipantIDs: []string{ids[0], ids[1]},
	}))

	t.Run("GetExpense keeps participant order and exact amount", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Description)
		assert.Equal(t, []string{ids[2], ids[0], ids[1]}, got.ParticipantIDs)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("90.1")), "got %s", got.Amount)
	})

	t.Run("ListExpensesByGroup scopes to the group", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)

		kinds := map[models.ExpenseKind]int{}
		for _, e := range expenses {
			assert.NotEmpty(t, e.ParticipantIDs)
			kinds[e.Kind]++
		}
		assert.Equal(t, 1, kinds[models.KindSettlement])
	})

	t.Run("ListExpenses returns everything", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Len(t, expenses, 3)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		require.NoError(t, store.DeleteExpense(ctx, expense.ID))
		_, err := store.GetExpense(ctx, expense.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		err = store.DeleteExpense(ctx, expense.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("DeleteGroup cascades expenses", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)

		remaining, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)

		err = store.DeleteGroup(ctx, group.ID)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	store, err := New(path)
	require.NoError(t, err)
	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}
