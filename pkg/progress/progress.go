// Package progress reports how far a run went.
//
// The runner builds a Snapshot every time it crosses a progress interval and once more when
// the input is exhausted, and hands it to an Observer. Observers log it, export it as
// Prometheus metrics, or both through Multi.
package progress

import "time"

// Snapshot is the state of a run at a given point.
type Snapshot struct {
	// BytesRead counts every byte consumed from the input, skipped records included.
	BytesRead int64
	// StoredBytes is the amount of line content retained by dedupe steps.
	StoredBytes  int64
	LinesRead    int64
	LinesWritten int64
	LinesDropped int64
	// Skipped counts records that were not valid UTF-8.
	Skipped int64
	Flushes int64
	Elapsed time.Duration
	// Final is set on the last snapshot of a run.
	Final bool
}

// Observer receives progress snapshots. Observe is called from the run loop and must not block.
type Observer interface {
	Observe(snapshot Snapshot)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(snapshot Snapshot)

// Observe calls f.
func (f ObserverFunc) Observe(snapshot Snapshot) {
	f(snapshot)
}

type multi []Observer

func (m multi) Observe(snapshot Snapshot) {
	for _, obs := range m {
		obs.Observe(snapshot)
	}
}

// Multi returns an Observer forwarding every snapshot to observers, in order.
// Nil observers are ignored.
func Multi(observers ...Observer) Observer {
	res := make(multi, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			res = append(res, obs)
		}
	}

	return res
}

// Nop is an Observer doing nothing.
var Nop Observer = ObserverFunc(func(Snapshot) {})
