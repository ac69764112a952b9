// Package runner drives lines from a source, through a pipeline, to a sink.
package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/rangler/pkg/progress"
)

// DefaultProgressInterval is the number of input bytes between two progress ticks.
const DefaultProgressInterval = 256_000

// Source hands out input records. ok is false once the input is exhausted, valid is false
// for a record that must be skipped.
type Source interface {
	NextRecord(ctx context.Context) (line string, valid, ok bool, err error)
	BytesRead() int64
	Skipped() int64
}

// Sink receives the surviving lines.
type Sink interface {
	WriteLine(line string) error
	Flush() error
	Flushes() int64
}

// Transformer is the line transformation applied to every input line.
type Transformer interface {
	Apply(line string) (string, bool)
	Memory() int
	Finish() error
}

// Config tunes a run.
type Config struct {
	// ProgressInterval is the number of bytes read between two progress ticks.
	// Zero means DefaultProgressInterval.
	ProgressInterval int64
	// Observer is notified at each tick and once at the end. Nil means progress.Nop.
	Observer progress.Observer
}

type run struct {
	cfg      Config
	src      Source
	sink     Sink
	pipe     Transformer
	start    time.Time
	snapshot progress.Snapshot
}

// Run reads src until it is exhausted, writes every line kept by pipe to sink and returns the
// final snapshot.
//
// Each time more than ProgressInterval bytes were read since the previous tick, the observer
// is notified and the sink is flushed. At the end of the input the sink is flushed, the
// observer gets a final snapshot and pipe is finished. Any read, write or flush error stops
// the run.
func Run(ctx context.Context, cfg Config, pipe Transformer, src Source, sink Sink) (progress.Snapshot, error) {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.Observer == nil {
		cfg.Observer = progress.Nop
	}

	r := &run{cfg: cfg, src: src, sink: sink, pipe: pipe, start: time.Now()}

	err := r.loop(ctx)
	if err != nil {
		return r.take(false), err
	}

	err = sink.Flush()
	if err != nil {
		return r.take(false), err
	}

	snapshot := r.take(true)
	cfg.Observer.Observe(snapshot)

	err = pipe.Finish()
	if err != nil {
		return snapshot, errors.Wrap(err, "unable to finish pipeline")
	}

	return snapshot, nil
}

func (r *run) loop(ctx context.Context) error {
	var lastTick int64

	for {
		line, valid, ok, err := r.src.NextRecord(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if valid {
			err = r.process(line)
			if err != nil {
				return err
			}
		}

		if read := r.src.BytesRead(); read > lastTick+r.cfg.ProgressInterval {
			lastTick = read

			r.cfg.Observer.Observe(r.take(false))

			err = r.sink.Flush()
			if err != nil {
				return err
			}
		}
	}
}

func (r *run) process(line string) error {
	r.snapshot.LinesRead++

	value, kept := r.pipe.Apply(line)
	if !kept {
		r.snapshot.LinesDropped++

		return nil
	}

	err := r.sink.WriteLine(value)
	if err != nil {
		return err
	}
	r.snapshot.LinesWritten++

	return nil
}

func (r *run) take(final bool) progress.Snapshot {
	r.snapshot.BytesRead = r.src.BytesRead()
	r.snapshot.Skipped = r.src.Skipped()
	r.snapshot.StoredBytes = int64(r.pipe.Memory())
	r.snapshot.Flushes = r.sink.Flushes()
	r.snapshot.Elapsed = time.Since(r.start)
	r.snapshot.Final = final

	return r.snapshot
}
