// Package metrics defines and registers all custom Prometheus metrics for
// the complaint portal API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "complaints"

// CreatedTotal counts newly filed complaints.
// Label:
//   - category: "hostel", "mess", "college", "academic", "administrative", "other"
var CreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of complaints filed, by category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts status changes applied to complaints.
// Labels:
//   - status: the new status ("pending", "in-progress", "resolved", "rejected")
//   - path: "assign" (assignment-driven) or "update" (explicit status update)
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of status transitions, by resulting status and mutation path.",
	},
	[]string{"status", "path"},
)

// FeedbackRating observes the ratings students submit (range 1-5).
var FeedbackRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feedback_rating",
		Help:      "Distribution of feedback ratings submitted by students.",
		Buckets:   []float64{1, 2, 3, 4, 5},
	},
)

// UploadsStoredTotal counts files written to the upload area.
// Label:
//   - kind: "proof_image" or "work_proof"
var UploadsStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_stored_total",
		Help:      "Total number of attachment files stored, by kind.",
	},
	[]string{"kind"},
)

// StatsCacheTotal counts admin stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of admin stats cache lookups, by result.",
	},
	[]string{"result"},
)

// SoftDeletesTotal counts admin soft deletions of resolved complaints.
var SoftDeletesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "soft_deletes_total",
		Help:      "Total number of complaints soft-deleted by admins.",
	},
)
