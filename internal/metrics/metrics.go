// Package metrics holds the Prometheus collectors exported at /metrics.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitledger"

// Metrics holds Prometheus metrics for the RPC layer and the ledger.
type Metrics struct {
	rpcRequests        *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	expensesAggregated prometheus.Counter
	divisionRemainders prometheus.Counter
	expensesRecorded   *prometheus.CounterVec
	eventsPublished    *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of RPCs by procedure and result code",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Time taken to serve RPCs",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"procedure"}),
		expensesAggregated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_expenses_aggregated_total",
			Help:      "Total number of expenses folded into balance computations",
		}),
		divisionRemainders: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_division_remainders_total",
			Help:      "Total number of expenses whose amount did not split evenly",
		}),
		expensesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_recorded_total",
			Help:      "Total number of expenses stored by kind",
		}, []string{"kind"}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of expense events published by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRPC records one finished RPC. code is "ok" for successful calls.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveAggregation records one balance computation.
func (m *Metrics) ObserveAggregation(expenses, remainders int) {
	if m == nil {
		return
	}
	m.expensesAggregated.Add(float64(expenses))
	m.divisionRemainders.Add(float64(remainders))
}

func (m *Metrics) ExpenseRecorded(kind string) {
	if m == nil {
		return
	}
	m.expensesRecorded.WithLabelValues(kind).Inc()
}

// EventPublished records the outcome of publishing an event.
func (m *Metrics) EventPublished(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.eventsPublished.WithLabelValues(outcome).Inc()
}
