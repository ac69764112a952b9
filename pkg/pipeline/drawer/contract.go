package drawer

import (
	"time"

	"github.com/askiada/rangler/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// Draw creates a file with the pipeline graph.
	Draw() error
	// SetTotalTime sets the time elapsed since startTime as the label of the step.
	SetTotalTime(stepName string, startTime time.Time) error
	// AddMeasure labels steps and links with the metrics of measure.
	AddMeasure(measure measure.Measure) error
}
