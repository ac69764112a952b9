package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/rangler/pkg/pipeline/model"
)

func TestNewStepInfo(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		index    int
		kind     model.StepKind
		arg      string
		expected string
	}{
		"no argument":     {index: 0, kind: model.TrimKind, expected: "1. trim"},
		"with argument":   {index: 2, kind: model.FilterKind, arg: "^a.*", expected: `3. filter "^a.*"`},
		"quoted argument": {index: 1, kind: model.AppendKind, arg: `say "hi"`, expected: `2. append "say \"hi\""`},
		"empty argument":  {index: 4, kind: model.PrependKind, arg: "", expected: `5. prepend ""`},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			info := model.NewStepInfo(tc.index, tc.kind, tc.arg)
			assert.Equal(t, tc.expected, info.Name)
			assert.Equal(t, tc.index, info.Index)
			assert.Equal(t, tc.kind, info.Kind)
			assert.Equal(t, tc.arg, info.Arg)
		})
	}
}

func TestTakesArgument(t *testing.T) {
	t.Parallel()

	for _, kind := range []model.StepKind{model.FilterKind, model.AppendKind, model.PrependKind} {
		assert.True(t, kind.TakesArgument(), kind)
	}

	for _, kind := range []model.StepKind{model.TrimKind, model.LowerKind, model.UpperKind, model.DedupeKind, model.StartKind, model.EndKind} {
		assert.False(t, kind.TakesArgument(), kind)
	}
}
