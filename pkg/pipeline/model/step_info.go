package model

import (
	"strconv"
	"strings"
)

// StepKind identifies a transformation step. The set of kinds is closed.
type StepKind string

const (
	FilterKind  StepKind = "filter"
	AppendKind  StepKind = "append"
	PrependKind StepKind = "prepend"
	TrimKind    StepKind = "trim"
	LowerKind   StepKind = "lower"
	UpperKind   StepKind = "upper"
	DedupeKind  StepKind = "dedupe"

	// StartKind and EndKind mark the virtual steps bracketing a pipeline.
	StartKind StepKind = "start"
	EndKind   StepKind = "end"
)

// TakesArgument reports whether the keyword of the kind consumes one argument token.
func (k StepKind) TakesArgument() bool {
	switch k {
	case FilterKind, AppendKind, PrependKind:
		return true
	default:
		return false
	}
}

// StepInfo describes a step of a pipeline.
type StepInfo struct {
	Kind StepKind
	Arg  string
	Name string
	// Index is the position of the step in the pipeline, -1 for virtual steps.
	Index int
}

// NewStepInfo returns the description of the step at index. Names are unique within a pipeline.
func NewStepInfo(index int, kind StepKind, arg string) *StepInfo {
	var name strings.Builder

	name.WriteString(strconv.Itoa(index + 1))
	name.WriteString(". ")
	name.WriteString(string(kind))

	if kind.TakesArgument() {
		name.WriteString(" ")
		name.WriteString(strconv.Quote(arg))
	}

	return &StepInfo{
		Kind:  kind,
		Arg:   arg,
		Name:  name.String(),
		Index: index,
	}
}

var (
	StartStep = &StepInfo{Kind: StartKind, Name: "start", Index: -1}
	EndStep   = &StepInfo{Kind: EndKind, Name: "end", Index: -1}
)
