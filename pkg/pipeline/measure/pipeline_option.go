package measure

import (
	"time"

	"github.com/askiada/rangler/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	pm.AddMetric(model.EndStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	if step == model.EndStep {
		return nil
	}
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, computationDuration time.Duration, kept bool) {
	mt := pm.GetMetric(step.Name)
	if mt == nil {
		return
	}
	mt.AddDuration(computationDuration)
	if !kept {
		mt.AddDropped()
	}
}

func (pm *pipelineMeasure) Finish() error {
	pm.GetMetric(model.EndStep.Name).SetTotalDuration(time.Since(pm.startTime))

	return nil
}

// PipelineMeasure returns a pipeline option recording every step evaluation into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
