package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/rangler/pkg/pipeline/measure"
	"github.com/askiada/rangler/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()

	err := pd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}

	err = pd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	if step != model.EndStep {
		err := pd.AddStep(step.Name)
		if err != nil {
			return err
		}
	}

	return pd.AddLink(parentStep.Name, step.Name)
}

func (pd *pipelineDrawer) OnStepOutput(*model.StepInfo, time.Duration, bool) {}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	} else {
		err := pd.SetTotalTime(model.EndStep.Name, pd.startTime)
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer returns a pipeline option drawing the pipeline once it is finished.
//
// measure is optional. When set, the option recording into it must be passed to the
// pipeline before the drawer option, so that its metrics are complete when drawing.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
