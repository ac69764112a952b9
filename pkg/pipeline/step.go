package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/askiada/rangler/pkg/pipeline/model"
)

// Step is one transformation stage of a pipeline.
//
// Only the fields used by the kind of the step are set. The kind never changes after
// construction, and only a dedupe step mutates its state.
type Step struct {
	details *model.StepInfo

	// filter
	pattern *regexp.Regexp
	// append, prepend
	text string
	// dedupe
	seen   map[string]struct{}
	stored int
}

func newStep(details *model.StepInfo, pattern *regexp.Regexp) *Step {
	step := &Step{
		details: details,
		pattern: pattern,
	}

	switch details.Kind {
	case model.AppendKind, model.PrependKind:
		step.text = details.Arg
	case model.DedupeKind:
		step.seen = make(map[string]struct{})
	}

	return step
}

// Details returns the description of the step.
func (s *Step) Details() *model.StepInfo {
	return s.details
}

// Stored returns the number of bytes of line content held by a dedupe step.
// It is always 0 for other kinds.
func (s *Step) Stored() int {
	return s.stored
}

// Seen returns the number of distinct values held by a dedupe step.
func (s *Step) Seen() int {
	return len(s.seen)
}

// apply evaluates the step against value. It returns false when the line must be dropped.
func (s *Step) apply(value string) (string, bool) {
	switch s.details.Kind {
	case model.FilterKind:
		return value, s.pattern.MatchString(value)
	case model.AppendKind:
		return value + s.text, true
	case model.PrependKind:
		return s.text + value, true
	case model.TrimKind:
		return strings.TrimSpace(value), true
	case model.LowerKind:
		return strings.ToLower(value), true
	case model.UpperKind:
		return strings.ToUpper(value), true
	case model.DedupeKind:
		if _, ok := s.seen[value]; ok {
			return value, false
		}
		s.seen[value] = struct{}{}
		s.stored += len(value)

		return value, true
	default:
		panic(fmt.Sprintf("pipeline: unknown step kind %q", s.details.Kind))
	}
}
