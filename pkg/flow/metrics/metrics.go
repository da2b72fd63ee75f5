// Package metrics provides Prometheus collectors for process runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "procflow"

// Collector groups the collectors a Process reports to. A nil *Collector
// is valid and records nothing.
type Collector struct {
	// TasksTotal counts finished tasks.
	// Labels: strategy, outcome (success, failure, panic)
	TasksTotal *prometheus.CounterVec

	// TaskDuration tracks task execution time.
	TaskDuration *prometheus.HistogramVec

	// RunsTotal counts finished Execute calls.
	// Labels: strategy, status (completed, failed)
	RunsTotal *prometheus.CounterVec

	// ActiveTasks is the number of tasks executing right now.
	ActiveTasks prometheus.Gauge

	// PoolWorkers is the size of the most recently created worker pool.
	PoolWorkers prometheus.Gauge
}

// NewCollector creates collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		TasksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "completed_total",
				Help:      "Total number of tasks executed by outcome",
			},
			[]string{"strategy", "outcome"},
		),
		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "duration_seconds",
				Help:      "Duration of task execution in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "process",
				Name:      "runs_total",
				Help:      "Total number of process executions by final status",
			},
			[]string{"strategy", "status"},
		),
		ActiveTasks: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "task",
				Name:      "active",
				Help:      "Number of tasks currently executing",
			},
		),
		PoolWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Worker count of the most recently created pool",
			},
		),
	}
}

func (c *Collector) TaskStarted() {
	if c == nil {
		return
	}
	c.ActiveTasks.Inc()
}

func (c *Collector) TaskFinished(strategy, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.ActiveTasks.Dec()
	c.TasksTotal.WithLabelValues(strategy, outcome).Inc()
	c.TaskDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func (c *Collector) RunFinished(strategy, status string) {
	if c == nil {
		return
	}
	c.RunsTotal.WithLabelValues(strategy, status).Inc()
}

func (c *Collector) PoolCreated(workers int) {
	if c == nil {
		return
	}
	c.PoolWorkers.Set(float64(workers))
}
