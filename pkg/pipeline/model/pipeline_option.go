package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStep runs once per step while the pipeline is built, in pipeline order.
	// The first step has StartStep as parent; a final call links the last step to EndStep.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step evaluates a line.
	// kept is false when the step dropped the line.
	OnStepOutput(step *StepInfo, computationDuration time.Duration, kept bool)
	// Finish runs after the last line went through the pipeline.
	Finish() error
}
