// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics records the outcome of sync and task queue runs as
// Prometheus metrics. The commands are short lived, so the metrics are
// written to a node-exporter textfile instead of being scraped.
package metrics

import (
	"github.com/MKhiriev/lims-tamanu-bridge/models"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lims_tamanu_bridge"

// Outcome label values of the resources counter. Skipped resources carry
// their skip reason instead.
const (
	OutcomeCreated = "created"
	OutcomeEdited  = "edited"
)

// RunMetrics holds the collectors of one run. A nil *RunMetrics is valid
// and records nothing.
type RunMetrics struct {
	gatherer prometheus.Gatherer

	resources    *prometheus.CounterVec
	retries      *prometheus.CounterVec
	syncDuration *prometheus.GaugeVec
	lastSync     *prometheus.GaugeVec

	tasks         *prometheus.CounterVec
	tasksPending  prometheus.Gauge
	tasksDuration prometheus.Gauge
}

// New registers the run collectors with registry. A nil registry gets a
// fresh one, so the Go runtime collectors of the default registry do not
// end up in the textfile.
func New(registry *prometheus.Registry) *RunMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &RunMetrics{
		gatherer: registry,
		resources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "resources_total",
			Help:      "Remote resources handled by sync, by outcome.",
		}, []string{"resource", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "conflict_retries_total",
			Help:      "Units of work retried after a concurrent modification.",
		}, []string{"resource"}),
		syncDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "duration_seconds",
			Help:      "Duration of the last sync run.",
		}, []string{"resource"}),
		lastSync: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "last_run_timestamp_seconds",
			Help:      "Start of the last sync run.",
		}, []string{"resource", "dry"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "total",
			Help:      "Outbound tasks handled, by outcome.",
		}, []string{"outcome"}),
		tasksPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "pending",
			Help:      "Tasks left in the queue after the last run.",
		}),
		tasksDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "duration_seconds",
			Help:      "Duration of the last task queue run.",
		}),
	}

	registry.MustRegister(
		m.resources,
		m.retries,
		m.syncDuration,
		m.lastSync,
		m.tasks,
		m.tasksPending,
		m.tasksDuration,
	)
	return m
}

// ObserveSync records a sync report. Partial reports of failed runs are
// recorded as well.
func (m *RunMetrics) ObserveSync(report *models.SyncReport) {
	if m == nil || report == nil {
		return
	}

	m.resources.WithLabelValues(report.Resource, OutcomeCreated).Add(float64(report.Created))
	m.resources.WithLabelValues(report.Resource, OutcomeEdited).Add(float64(report.Edited))
	for reason, n := range report.Skipped {
		m.resources.WithLabelValues(report.Resource, string(reason)).Add(float64(n))
	}
	m.retries.WithLabelValues(report.Resource).Add(float64(report.Retries))
	m.syncDuration.WithLabelValues(report.Resource).Set(report.Elapsed.Seconds())

	dry := "false"
	if report.Dry {
		dry = "true"
	}
	m.lastSync.WithLabelValues(report.Resource, dry).Set(float64(report.Started.Unix()))
}

// ObserveTasks records a task queue report.
func (m *RunMetrics) ObserveTasks(report models.TaskReport) {
	if m == nil {
		return
	}

	m.tasks.WithLabelValues("posted").Add(float64(report.Posted))
	m.tasks.WithLabelValues("not_sent").Add(float64(report.Processed - report.Posted))
	m.tasks.WithLabelValues("dropped").Add(float64(report.Dropped))
	m.tasksPending.Set(float64(report.Remaining))
	m.tasksDuration.Set(report.Elapsed.Seconds())
}
