package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/rangler/pkg/pipeline/model"
)

var keywords = map[string]model.StepKind{
	string(model.FilterKind):  model.FilterKind,
	string(model.AppendKind):  model.AppendKind,
	string(model.PrependKind): model.PrependKind,
	string(model.TrimKind):    model.TrimKind,
	string(model.LowerKind):   model.LowerKind,
	string(model.UpperKind):   model.UpperKind,
	string(model.DedupeKind):  model.DedupeKind,
}

var missingArgument = map[model.StepKind]error{
	model.FilterKind:  ErrMissingRegex,
	model.AppendKind:  ErrMissingSuffix,
	model.PrependKind: ErrMissingPrefix,
}

// Pipeline is an ordered list of steps.
type Pipeline struct {
	steps []*Step
	opts  []model.PipelineOption
}

// New builds a pipeline from command tokens.
//
// Keywords are matched case-insensitively. filter, append and prepend take the next token
// verbatim as their argument. An empty token list gives a pipeline that passes every line
// through unchanged.
func New(tokens []string, opts ...model.PipelineOption) (*Pipeline, error) {
	steps, err := parse(tokens)
	if err != nil {
		return nil, err
	}

	pipe := &Pipeline{
		steps: steps,
		opts:  opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}

		parent := model.StartStep
		for _, step := range steps {
			err = opt.PrepareStep(parent, step.details)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to prepare step %s", step.details.Name)
			}
			parent = step.details
		}

		err = opt.PrepareStep(parent, model.EndStep)
		if err != nil {
			return nil, errors.Wrap(err, "unable to prepare end step")
		}
	}

	return pipe, nil
}

func parse(tokens []string) ([]*Step, error) {
	steps := make([]*Step, 0, len(tokens))

	for pos := 0; pos < len(tokens); pos++ {
		keyword := tokens[pos]

		kind, ok := keywords[strings.ToLower(keyword)]
		if !ok {
			return nil, &TokenError{Err: ErrInvalidCommand, Token: keyword, Pos: pos}
		}

		var arg string
		if kind.TakesArgument() {
			if pos+1 >= len(tokens) {
				return nil, &TokenError{Err: missingArgument[kind], Token: keyword, Pos: pos}
			}
			pos++
			arg = tokens[pos]
		}

		var pattern *regexp.Regexp
		if kind == model.FilterKind {
			var err error

			pattern, err = regexp.Compile(arg)
			if err != nil {
				return nil, &TokenError{Err: ErrInvalidRegex, Cause: err, Token: arg, Pos: pos}
			}
		}

		steps = append(steps, newStep(model.NewStepInfo(len(steps), kind, arg), pattern))
	}

	return steps, nil
}

// Apply runs line through every step in order.
//
// It returns the transformed line and true when the line survived, or false when a filter
// or dedupe step dropped it. Steps after the dropping one are not evaluated, while values
// recorded by earlier dedupe steps are kept.
func (p *Pipeline) Apply(line string) (string, bool) {
	if len(p.opts) > 0 {
		return p.applyObserved(line)
	}

	value := line
	for _, step := range p.steps {
		var kept bool

		value, kept = step.apply(value)
		if !kept {
			return "", false
		}
	}

	return value, true
}

func (p *Pipeline) applyObserved(line string) (string, bool) {
	value := line
	for _, step := range p.steps {
		var kept bool

		start := time.Now()
		value, kept = step.apply(value)
		elapsed := time.Since(start)

		for _, opt := range p.opts {
			opt.OnStepOutput(step.details, elapsed, kept)
		}

		if !kept {
			return "", false
		}
	}

	return value, true
}

// Memory returns the number of bytes of line content held by the dedupe steps.
func (p *Pipeline) Memory() int {
	memory := 0
	for _, step := range p.steps {
		memory += step.stored
	}

	return memory
}

// Steps returns the steps of the pipeline, in evaluation order.
func (p *Pipeline) Steps() []*Step {
	return p.steps
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Finish runs the Finish hook of every pipeline option.
// It must be called once, after the last line went through the pipeline.
func (p *Pipeline) Finish() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
