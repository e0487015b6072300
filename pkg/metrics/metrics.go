package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InteractionMetrics records inbound interaction handling outcomes.
type InteractionMetrics struct {
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInteractionMetrics registers interaction metrics on the provided registerer.
func NewInteractionMetrics(reg prometheus.Registerer) *InteractionMetrics {
	if reg == nil {
		return &InteractionMetrics{}
	}
	handled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interactions_handled_total",
		Help: "Handled interaction events by action and outcome.",
	}, []string{"action", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interaction_duration_seconds",
		Help:    "Duration of interaction handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	reg.MustRegister(handled, duration)
	return &InteractionMetrics{handled: handled, duration: duration}
}

// IncHandled increments the handled counter for the action/outcome pair.
func (m *InteractionMetrics) IncHandled(action, outcome string) {
	if m == nil || m.handled == nil {
		return
	}
	m.handled.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// ObserveDuration records how long handling the action took.
func (m *InteractionMetrics) ObserveDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// JobMetrics records metadata for scheduled jobs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewJobMetrics registers the job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful scheduled job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed scheduled job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &JobMetrics{duration: duration, success: success, failure: failure}
}

// ObserveDuration records the duration for the named job.
func (c *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (c *JobMetrics) IncSuccess(job string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (c *JobMetrics) IncFailure(job string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
