// Package events publishes notifications about recorded expenses.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// Publisher delivers events to interested consumers.
type Publisher interface {
	PublishExpenseRecorded(ctx context.Context, event *ExpenseRecorded) error
	Close() error
}

// ExpenseRecorded is emitted after an expense or settlement is stored.
// Amount is a fixed two-decimal string so consumers never see a float.
type ExpenseRecorded struct {
	ExpenseID      string    `json:"expenseId"`
	GroupID        string    `json:"groupId"`
	Kind           string    `json:"kind"`
	Description    string    `json:"description"`
	Amount         string    `json:"amount"`
	PayerID        string    `json:"payerId"`
	ParticipantIDs []string  `json:"participantIds"`
	RecordedBy     string    `json:"recordedBy,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewExpenseRecorded builds the event for a stored expense.
func NewExpenseRecorded(expense *models.Expense, recordedBy string) *ExpenseRecorded {
	return &ExpenseRecorded{
		ExpenseID:      expense.ID,
		GroupID:        expense.GroupID,
		Kind:           string(expense.Kind),
		Description:    expense.Description,
		Amount:         expense.Amount.StringFixed(2),
		PayerID:        expense.PayerID,
		ParticipantIDs: expense.ParticipantIDs,
		RecordedBy:     recordedBy,
		Timestamp:      time.Now().UTC(),
	}
}

func (e *ExpenseRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseRecordedFromJSON decodes an event body.
func ExpenseRecordedFromJSON(data []byte) (*ExpenseRecorded, error) {
	var e ExpenseRecorded
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishExpenseRecorded(context.Context, *ExpenseRecorded) error { return nil }

func (NopPublisher) Close() error { return nil }
