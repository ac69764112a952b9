// Package model provides the data structures shared by the pipeline package and its options.
// It defines the step kinds a pipeline is built from, the description of each step,
// and the hooks a pipeline option implements to observe construction and evaluation.
package model
