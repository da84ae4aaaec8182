// Package metrics defines and registers all custom Prometheus metrics for the
// planner API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "planner"

// ── Sync metrics ──────────────────────────────────────────────────────────────

// SyncWritesTotal counts cloud snapshot writes.
// Label:
//   - result: "ok", "conflict" or "error"
var SyncWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_writes_total",
		Help:      "Total number of cloud snapshot writes, by result.",
	},
	[]string{"result"},
)

// SyncWriteDuration measures a single cloud write from dequeue to completion.
var SyncWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_write_duration_seconds",
		Help:      "Duration of cloud snapshot writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// SyncQueueDepth tracks the number of jobs waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SyncQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_queue_depth",
		Help:      "Current number of sync jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreMutationsTotal counts actions dispatched to planner stores.
// Label:
//   - action: the mutation name (e.g. "add_guest", "update_budget_item")
var StoreMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_mutations_total",
		Help:      "Total number of planner mutations, by action.",
	},
	[]string{"action"},
)

// ObserveStoresOpen exposes the number of planner stores held in memory,
// read from open at scrape time. Call it once at startup.
func ObserveStoresOpen(open func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stores_open",
			Help:      "Number of planner stores currently loaded.",
		},
		func() float64 { return float64(open()) },
	)
}

// ── Advisor metrics ───────────────────────────────────────────────────────────

// AdvisorCallsTotal counts advisor requests.
// Labels:
//   - kind: "chat", "speech" or "fengshui"
//   - result: "ok", "limited" or "error"
var AdvisorCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisor_calls_total",
		Help:      "Total number of advisor requests, by kind and result.",
	},
	[]string{"kind", "result"},
)
