// Package metrics exposes Prometheus instrumentation for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	botUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates handled, labeled by kind and status",
		},
		[]string{"kind", "status"},
	)
	updateDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_update_duration_seconds",
			Help:    "Duration of update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
	lookupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Total number of lookup API dispatches labeled by type and outcome",
		},
		[]string{"type", "status"},
	)
	lookupDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookup_duration_seconds",
			Help:    "Duration of lookup API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)
	gateChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_checks_total",
			Help: "Total number of channel-membership gate checks by result",
		},
		[]string{"result"},
	)
	creditsSpentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_spent_total",
			Help: "Total number of credits spent on lookups",
		},
	)
	referralsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referrals_total",
			Help: "Total number of referral edges recorded",
		},
	)
)

// RecordUpdate increments the update counter and records duration.
func RecordUpdate(kind, status string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botUpdatesTotal.WithLabelValues(kind, status).Inc()
	updateDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordLookup tracks one lookup dispatch outcome.
func RecordLookup(lookupType, status string, duration time.Duration) {
	if lookupType == "" {
		lookupType = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	lookupRequestsTotal.WithLabelValues(lookupType, status).Inc()
	lookupDurationSeconds.WithLabelValues(lookupType).Observe(duration.Seconds())
}

// RecordGateCheck tracks a membership gate evaluation.
func RecordGateCheck(passed bool) {
	result := "denied"
	if passed {
		result = "passed"
	}

	gateChecksTotal.WithLabelValues(result).Inc()
}

// RecordCreditSpent counts one spent credit.
func RecordCreditSpent() {
	creditsSpentTotal.Inc()
}

// RecordReferral counts one recorded referral edge.
func RecordReferral() {
	referralsTotal.Inc()
}
