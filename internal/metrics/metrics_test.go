package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "ok", 10*time.Millisecond)
	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "ok", 20*time.Millisecond)
	m.ObserveRPC("/splitledger.v1.GroupService/GetGroup", "not_found", time.Millisecond)
	m.ObserveAggregation(4, 1)
	m.ObserveAggregation(3, 0)
	m.ExpenseRecorded("settlement")
	m.EventPublished(nil)
	m.EventPublished(errors.New("broker down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/splitledger.v1.GroupService/GetGroup", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcRequests.WithLabelValues("/splitledger.v1.GroupService/GetGroup", "not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.rpcDuration))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.expensesAggregated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.divisionRemainders))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.expensesRecorded.WithLabelValues("settlement")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("error")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRPC("p", "ok", time.Second)
		m.ObserveAggregation(1, 1)
		m.ExpenseRecorded("expense")
		m.EventPublished(nil)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
