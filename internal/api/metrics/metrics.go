// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Identity metrics ──────────────────────────────────────────────────────────

// OTPRequestsTotal counts verification code requests.
// Label:
//   - result: "issued", "invalid_identifier", or "rate_limited"
var OTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of OTP issuance requests, by result.",
	},
	[]string{"result"},
)

// OTPVerificationsTotal counts verification attempts.
// Label:
//   - result: "ok", "invalid", "expired", or "locked_out"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed signups.
// Label:
//   - role: "creator" or "brand"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of completed signups, by role.",
	},
	[]string{"role"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionRestoresTotal counts stored-session restores at app start.
// Label:
//   - result: "authenticated", "unauthenticated"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of stored-session restore attempts, by result.",
	},
	[]string{"result"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// OffersTotal counts offer lifecycle events.
// Label:
//   - status: the offer status entered ("pending", "accepted", "rejected", "withdrawn")
var OffersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offers_total",
		Help:      "Total number of offer status changes, by resulting status.",
	},
	[]string{"status"},
)

// MessagesTotal counts chat messages persisted.
var MessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_total",
		Help:      "Total number of chat messages persisted.",
	},
)

// MessageQueueDepth tracks the number of messages waiting per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MessageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "message_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
