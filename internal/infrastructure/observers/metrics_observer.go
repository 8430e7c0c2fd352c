package observers

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// MetricsObserver counts step events per step and level.
type MetricsObserver struct {
	registry   *prometheus.Registry
	stepEvents *prometheus.CounterVec
}

// NewMetricsObserver creates the step counter and registers it in its own registry.
func NewMetricsObserver() *MetricsObserver {
	registry := prometheus.NewRegistry()
	stepEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "releaser_step_events_total",
			Help: "Total number of release step events",
		},
		[]string{"step", "level"},
	)
	registry.MustRegister(stepEvents)

	return &MetricsObserver{
		registry:   registry,
		stepEvents: stepEvents,
	}
}

// Notify increments the counter of the event's step and level.
func (it *MetricsObserver) Notify(event entities.StepEvent) {
	it.stepEvents.WithLabelValues(event.Step, string(event.Level)).Inc()
}

// Count returns the number of events observed for a step and level.
func (it *MetricsObserver) Count(step string, level entities.StepLevel) float64 {
	metric := &dto.Metric{}
	if err := it.stepEvents.WithLabelValues(step, string(level)).Write(metric); err != nil {
		return 0
	}
	return metric.GetCounter().GetValue()
}

// Registry returns the registry holding the release metrics.
func (it *MetricsObserver) Registry() *prometheus.Registry {
	return it.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector.
func (it *MetricsObserver) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, it.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
