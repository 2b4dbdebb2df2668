// Package metrics defines and registers all custom Prometheus metrics for
// the directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Escalation metrics ────────────────────────────────────────────────────────

// EscalationsProcessedTotal counts enquiry escalations that completed
// processing successfully.
// Label:
//   - dealer_id: the dealer whose enquiry was escalated
var EscalationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "escalations_processed_total",
		Help:      "Total number of enquiry escalations successfully processed.",
	},
	[]string{"dealer_id"},
)

// EscalationsErrorsTotal counts escalations that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "invalid_transition", "enquiry_not_found", "update_failed")
var EscalationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "escalations_errors_total",
		Help:      "Total number of enquiry escalations that failed processing.",
	},
	[]string{"reason"},
)

// EnquiriesEscalatedTotal counts escalations accepted into the queue.
// Label:
//   - dealer_id: the dealer requesting the escalation
var EnquiriesEscalatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enquiries_escalated_total",
		Help:      "Total number of enquiry escalations enqueued.",
	},
	[]string{"dealer_id"},
)

// EscalationQueueDepth tracks the current number of escalations waiting in
// each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EscalationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "escalation_queue_depth",
		Help:      "Current number of escalations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EscalationDuration measures how long a single escalation takes to
// process from dequeue to persistence.
var EscalationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "escalation_processing_duration_seconds",
		Help:      "Duration of escalation processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts newly created dealer products.
// Label:
//   - category: product category identifier
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of dealer products created, by category.",
	},
	[]string{"category"},
)

// OfferLikesTotal counts accepted (non-duplicate) offer likes.
var OfferLikesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offer_likes_total",
		Help:      "Total number of accepted offer likes.",
	},
)
