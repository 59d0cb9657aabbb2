// Package metrics defines the custom Prometheus metrics of the legal API.
// HTTP request metrics come from the echoprometheus middleware; this package
// only holds domain counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "legal"

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts accepted application submissions.
// Label:
//   - kind: "lawyer", "law_firm", "firm_lawyer" or "firm_client"
var ApplicationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of applications accepted for review.",
	},
	[]string{"kind"},
)

// ApplicationsRejectedAtSubmitTotal counts submissions refused before insert.
// Label:
//   - reason: "duplicate_application", "duplicate_identity" or "in_flight"
var ApplicationsRejectedAtSubmitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_refused_total",
		Help:      "Total number of application submissions refused by duplicate checks.",
	},
	[]string{"reason"},
)

// ApplicationDecisionsTotal counts decisions that won the pending check.
// Labels:
//   - kind: application kind
//   - status: "approved" or "rejected"
var ApplicationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_decisions_total",
		Help:      "Total number of application decisions, by kind and outcome.",
	},
	[]string{"kind", "status"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Labels:
//   - role: the role the caller tried to sign in as
//   - result: "success", "invalid" or "deactivated"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// TokensIssuedTotal counts bearer tokens minted.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by role.",
	},
	[]string{"role"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatRequestsTotal counts relayed chat messages.
// Labels:
//   - session: "user" or "guest"
//   - result: "ok" or "error"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat messages relayed to the language model.",
	},
	[]string{"session", "result"},
)

// ChatLatency measures the round trip to the language model.
var ChatLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_completion_duration_seconds",
		Help:      "Duration of language model completions.",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32},
	},
	[]string{"session"},
)
