package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	deadline bool
}

type fakeChannel struct {
	published []published
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if c.err != nil {
		return c.err
	}
	_, hasDeadline := ctx.Deadline()
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func testExpense() *models.Expense {
	return &models.Expense{
		ID:             "e1",
		GroupID:        "g1",
		Description:    "Dinner",
		Amount:         decimal.RequireFromString("90.5"),
		PayerID:        "alice",
		ParticipantIDs: []string{"alice", "bob"},
		Kind:           models.KindExpense,
	}
}

func TestNewExpenseRecorded(t *testing.T) {
	event := NewExpenseRecorded(testExpense(), "alice")

	data, err := event.ToJSON()
	require.NoError(t, err)

	decoded, err := ExpenseRecordedFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "90.50", decoded.Amount)
	assert.Equal(t, "expense", decoded.Kind)
	assert.Equal(t, []string{"alice", "bob"}, decoded.ParticipantIDs)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}

func TestAMQPPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{
		channel:      ch,
		exchangeName: "splitledger",
		queueName:    "expense_recorded",
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	require.NoError(t, p.PublishExpenseRecorded(context.Background(), NewExpenseRecorded(testExpense(), "")))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "splitledger", got.exchange)
	assert.Equal(t, "expense_recorded", got.key)
	assert.True(t, got.deadline)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, uint8(amqp091.Persistent), got.msg.DeliveryMode)
	assert.Equal(t, "e1", got.msg.MessageId)

	event, err := ExpenseRecordedFromJSON(got.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "g1", event.GroupID)

	ch.err = errors.New("channel closed")
	assert.Error(t, p.PublishExpenseRecorded(context.Background(), NewExpenseRecorded(testExpense(), "")))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishExpenseRecorded(context.Background(), NewExpenseRecorded(testExpense(), "")))
	assert.NoError(t, p.Close())
}
