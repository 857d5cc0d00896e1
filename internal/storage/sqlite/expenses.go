package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

const expenseColumns = "id, group_id, description, amount, payer_id, kind, created_at"

// CreateExpense persists a new expense and its ordered participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Kind == "" {
		expense.Kind = models.KindExpense
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			expense.ID, expense.GroupID, expense.Description, expense.Amount.String(),
			expense.PayerID, string(expense.Kind), expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, userID := range expense.ParticipantIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, position, user_id) VALUES (?, ?, ?)",
				expense.ID, i, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense participant: %w", err)
			}
		}
		return nil
	})
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var kind string
	if err := row.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PayerID, &kind, &expense.CreatedAt); err != nil {
		return nil, err
	}
	expense.Kind = models.ExpenseKind(kind)
	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	participants, err := s.participants(ctx, "WHERE expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	expense.ParticipantIDs = participants[expense.ID]

	return expense, nil
}

// ListExpenses retrieves every expense across all groups.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "", "")
}

// ListExpensesByGroup retrieves all expenses for a group.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"WHERE group_id = ?",
		"WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
		groupID,
	)
}

// listExpenses loads expenses and their participants in two queries.
func (s *SQLiteStore) listExpenses(ctx context.Context, expenseWhere, participantWhere string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses "+expenseWhere+" ORDER BY created_at, id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	participants, err := s.participants(ctx, participantWhere, args...)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		expense.ParticipantIDs = participants[expense.ID]
	}

	return expenses, nil
}

// participants loads participant lists keyed by expense ID, in their stored order.
func (s *SQLiteStore) participants(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, user_id FROM expense_participants "+where+" ORDER BY expense_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	participants := make(map[string][]string)
	for rows.Next() {
		var expenseID, userID string
		if err := rows.Scan(&expenseID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		participants[expenseID] = append(participants[expenseID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return participants, nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense participants: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("expense", expenseID)
		}
		return nil
	})
}
