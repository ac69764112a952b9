// Package pipeline provides a line transformation pipeline.
//
// A pipeline is an ordered list of steps built once from command tokens such as
//
//	filter "^ERROR" trim lower dedupe prepend "> "
//
// Each line handed to Apply runs through every step in order. Filter and dedupe steps can
// drop the line, in which case the remaining steps are not evaluated. Every other step
// rewrites the running value: append and prepend add fixed text, trim removes surrounding
// whitespace, lower and upper change the case.
//
// A dedupe step remembers every value it let through and drops later values equal to one
// of them. It is the only step holding state, and that state is never pruned: memory grows
// with the number of distinct values reaching the step. Memory reports how many bytes of
// line content the dedupe steps of a pipeline currently hold.
//
// A pipeline has a single owner and is not safe for concurrent use. Lines are expected to
// be evaluated one at a time, in input order.
//
// Pipeline options, defined by the model package, observe the construction of a pipeline
// and the evaluation of every step. The measure and drawer packages provide options to
// time each step and to render the pipeline as a graph.
package pipeline
