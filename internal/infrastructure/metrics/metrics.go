package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ebursary_transitions_total",
			Help: "Status changes committed, by target status and actor role",
		},
		[]string{"to_status", "role"},
	)

	MutationsRefused = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ebursary_mutations_refused_total",
			Help: "Mutations refused by the workflow rules",
		},
		[]string{"operation", "reason"},
	)

	// fund sources are free text, so they stay out of the label set
	AllocatedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ebursary_allocated_amount_total",
			Help: "Sum of allocated amounts",
		},
	)

	DisbursedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ebursary_disbursed_amount_total",
			Help: "Sum of disbursed amounts",
		},
	)

	BulkAllocationSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ebursary_bulk_allocation_size",
			Help:    "Applications per committed bulk allocation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	IdempotentReplays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ebursary_idempotent_replays_total",
			Help: "Responses served from the idempotency store",
		},
	)
)
