// Package metrics defines and registers all custom Prometheus metrics for
// the social graph API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// RelationshipMutationsTotal counts committed relationship mutations.
// Labels:
//   - op:  "add" or "remove"
//   - set: "friends" or "enemies"
var RelationshipMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationship_mutations_total",
		Help:      "Total number of committed relationship mutations, by operation and set.",
	},
	[]string{"op", "set"},
)

// ReconcileTasksTotal counts reconciliation task outcomes.
// Labels:
//   - kind:   "reciprocal-add", "reciprocal-remove", or "purge-refs"
//   - result: "applied", "dropped" (party gone), or "failed"
var ReconcileTasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconcile_tasks_total",
		Help:      "Total number of reconciliation tasks, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ReconcileQueueDepth tracks the number of tasks waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var ReconcileQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reconcile_queue_depth",
		Help:      "Current number of tasks pending in each reconciler worker channel.",
	},
	[]string{"worker_id"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
