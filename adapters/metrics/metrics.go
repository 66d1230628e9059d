// Package metrics records generation activity as Prometheus metrics and
// exports them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/artpar/reacthub/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reacthub"

// Collector holds all Prometheus metrics for a generation run.
type Collector struct {
	registry *prometheus.Registry

	// Output metrics
	FilesRendered      *prometheus.CounterVec
	BindingsUnresolved *prometheus.CounterVec

	// Toolchain metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Step metrics
	StepDuration *prometheus.HistogramVec
	LastRun      prometheus.Gauge
}

// New creates a collector on a private registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		FilesRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_rendered_total",
				Help:      "Total number of files written from templates",
			},
			[]string{"template"},
		),
		BindingsUnresolved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bindings_unresolved_total",
				Help:      "Total number of page operations without an API binding",
			},
			[]string{"operation"},
		),
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of toolchain commands run",
			},
			[]string{"name", "ok"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Toolchain command duration in seconds",
				Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"name"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Generation step duration in seconds",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"step"},
		),
		LastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp",
				Help:      "Unix timestamp of the last completed run",
			},
		),
	}
}

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// FileRendered counts a written file.
func (c *Collector) FileRendered(template string) {
	c.FilesRendered.WithLabelValues(template).Inc()
}

// CommandRun records a toolchain command.
func (c *Collector) CommandRun(name string, ok bool, d time.Duration) {
	c.CommandsTotal.WithLabelValues(name, strconv.FormatBool(ok)).Inc()
	c.CommandDuration.WithLabelValues(name).Observe(d.Seconds())
}

// BindingUnresolved counts a missing API binding.
func (c *Collector) BindingUnresolved(operation string) {
	c.BindingsUnresolved.WithLabelValues(operation).Inc()
}

// StepCompleted records a step duration.
func (c *Collector) StepCompleted(step string, d time.Duration) {
	c.StepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// WriteTextfile stamps the run time and writes every metric to path.
func (c *Collector) WriteTextfile(path string, now time.Time) error {
	c.LastRun.Set(float64(now.Unix()))
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Nop discards all metrics.
type Nop struct{}

func (Nop) FileRendered(string)                   {}
func (Nop) CommandRun(string, bool, time.Duration) {}
func (Nop) BindingUnresolved(string)              {}
func (Nop) StepCompleted(string, time.Duration)   {}

var (
	_ ports.Metrics = (*Collector)(nil)
	_ ports.Metrics = Nop{}
)
