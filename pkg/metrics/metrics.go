// Package metrics содержит счётчики Prometheus для процесса согласования.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	RequestsCreated   *prometheus.CounterVec
	Decisions         *prometheus.CounterVec
	DecisionFailures  *prometheus.CounterVec
	CacheInvalidation prometheus.Counter
}

// New регистрирует счётчики в переданном реестре.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetdesk",
			Name:      "requests_created_total",
			Help:      "Asset requests and service tickets created, by issue type.",
		}, []string{"issue_type"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetdesk",
			Name:      "request_decisions_total",
			Help:      "Committed request decisions, by new status.",
		}, []string{"status"}),
		DecisionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetdesk",
			Name:      "request_decision_failures_total",
			Help:      "Rejected or failed decisions, by reason.",
		}, []string{"reason"}),
		CacheInvalidation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "assetdesk",
			Name:      "cache_invalidations_total",
			Help:      "Dashboard cache entries invalidated after request changes.",
		}),
	}
	reg.MustRegister(m.RequestsCreated, m.Decisions, m.DecisionFailures, m.CacheInvalidation)
	return m
}

// NewNop - счётчики в отдельном реестре, для тестов.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
