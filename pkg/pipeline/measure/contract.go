package measure

import "time"

// Measure holds one Metric per step of a pipeline.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the evaluations of a single step.
type Metric interface {
	// AddDuration records one evaluation of the step.
	AddDuration(elapsed time.Duration)
	// AddDropped records a line dropped by the step.
	AddDropped()
	AVGDuration() time.Duration
	Total() int64
	Dropped() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
