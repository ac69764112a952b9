package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/rangler/pkg/pipeline/model"
)

func TestDedupeStepState(t *testing.T) {
	t.Parallel()

	step := newStep(model.NewStepInfo(0, model.DedupeKind, ""), nil)
	assert.Zero(t, step.Stored())
	assert.Zero(t, step.Seen())

	lengths := 0
	for _, value := range []string{"one", "two", "three", "two", "one", "four"} {
		got, kept := step.apply(value)
		assert.Equal(t, value, got)
		if kept {
			lengths += len(value)
		}
		assert.Equal(t, lengths, step.Stored())
	}

	assert.Equal(t, 4, step.Seen())
	assert.Equal(t, len("one")+len("two")+len("three")+len("four"), step.Stored())
}

func TestStatelessStepsKeepNoState(t *testing.T) {
	t.Parallel()

	steps, err := parse([]string{"trim", "lower", "upper", "append", "x", "prepend", "y", "filter", "."})
	require.NoError(t, err)

	for _, step := range steps {
		_, _ = step.apply("Some Line")
		assert.Zero(t, step.Stored(), step.details.Name)
		assert.Nil(t, step.seen, step.details.Name)
	}
}

func TestApplyUnknownKindPanics(t *testing.T) {
	t.Parallel()

	step := &Step{details: &model.StepInfo{Kind: model.StepKind("reverse")}}
	assert.Panics(t, func() {
		step.apply("abc")
	})
}
