package stream

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Sink writes lines to an output.
type Sink struct {
	writer       *bufio.Writer
	bytesWritten int64
	flushes      int64
}

// NewSink returns a Sink writing to wrt through a buffer of size bytes.
// A size lower or equal to zero falls back to DefaultBufferSize.
func NewSink(wrt io.Writer, size int) *Sink {
	if size <= 0 {
		size = DefaultBufferSize
	}

	return &Sink{writer: bufio.NewWriterSize(wrt, size)}
}

// WriteLine buffers line followed by a newline.
func (s *Sink) WriteLine(line string) error {
	n, err := s.writer.WriteString(line)
	s.bytesWritten += int64(n)
	if err != nil {
		return errors.Wrap(err, "unable to write line")
	}

	err = s.writer.WriteByte('\n')
	if err != nil {
		return errors.Wrap(err, "unable to write line")
	}
	s.bytesWritten++

	return nil
}

// Flush pushes the buffered lines to the output.
func (s *Sink) Flush() error {
	err := s.writer.Flush()
	if err != nil {
		return errors.Wrap(err, "unable to flush output")
	}
	s.flushes++

	return nil
}

// BytesWritten returns the number of bytes accepted by WriteLine, flushed or not.
func (s *Sink) BytesWritten() int64 {
	return s.bytesWritten
}

// Flushes returns the number of successful calls to Flush.
func (s *Sink) Flushes() int64 {
	return s.flushes
}
