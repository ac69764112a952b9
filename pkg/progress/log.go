package progress

import (
	units "github.com/docker/go-units"
	"github.com/rs/zerolog"
)

// HumanBytes formats n with binary units, for instance 250KiB.
func HumanBytes(n int64) string {
	return units.BytesSize(float64(n))
}

// LogObserver writes a log line for every snapshot.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver returns a LogObserver writing to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe logs "<read> read, <stored> stored" along with the line counters.
func (l *LogObserver) Observe(snapshot Snapshot) {
	event := l.logger.Debug()
	if snapshot.Final {
		event = l.logger.Info()
	}

	event.
		Int64("lines_read", snapshot.LinesRead).
		Int64("lines_written", snapshot.LinesWritten).
		Int64("lines_dropped", snapshot.LinesDropped).
		Int64("records_skipped", snapshot.Skipped).
		Dur("elapsed", snapshot.Elapsed).
		Bool("final", snapshot.Final).
		Msgf("%s read, %s stored", HumanBytes(snapshot.BytesRead), HumanBytes(snapshot.StoredBytes))
}

var _ Observer = (*LogObserver)(nil)
