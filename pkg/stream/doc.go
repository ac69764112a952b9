// Package stream reads newline separated records from an input and writes lines to an output.
//
// Both sides are buffered. A LineSource hands out one line at a time, without its trailing
// newline, and silently skips records that are not valid UTF-8. A Sink writes lines followed
// by a single newline and only reaches the underlying writer when its buffer is full or when
// it is flushed.
package stream
