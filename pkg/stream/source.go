package stream

import (
	"bufio"
	"context"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultBufferSize is the default size of the read and write buffers.
const DefaultBufferSize = 1_000_000

// LineSource splits an input into lines.
type LineSource struct {
	reader    *bufio.Reader
	bytesRead int64
	skipped   int64
	done      bool
}

// NewLineSource returns a LineSource reading from rd through a buffer of size bytes.
// A size lower or equal to zero falls back to DefaultBufferSize.
func NewLineSource(rd io.Reader, size int) *LineSource {
	if size <= 0 {
		size = DefaultBufferSize
	}

	return &LineSource{reader: bufio.NewReaderSize(rd, size)}
}

// Next returns the next valid line.
//
// The boolean is false once the input is exhausted. A final record without a trailing
// newline is still returned. Records that are not valid UTF-8 are counted and skipped.
// A carriage return before the newline is part of the line.
func (s *LineSource) Next(ctx context.Context) (string, bool, error) {
	for {
		line, valid, ok, err := s.NextRecord(ctx)
		if err != nil || !ok {
			return "", false, err
		}
		if valid {
			return line, true, nil
		}
	}
}

// NextRecord returns the next record, whether it is valid UTF-8 or not.
//
// ok is false once the input is exhausted. When valid is false the record was counted as
// skipped and line is empty.
func (s *LineSource) NextRecord(ctx context.Context) (line string, valid, ok bool, err error) {
	if s.done {
		return "", false, false, nil
	}

	if err := ctx.Err(); err != nil {
		return "", false, false, errors.Wrap(err, "reading interrupted")
	}

	raw, err := s.reader.ReadBytes('\n')
	s.bytesRead += int64(len(raw))

	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, false, errors.Wrap(err, "unable to read line")
		}

		s.done = true
		if len(raw) == 0 {
			return "", false, false, nil
		}
	}

	if n := len(raw); n > 0 && raw[n-1] == '\n' {
		raw = raw[:n-1]
	}

	if !utf8.Valid(raw) {
		s.skipped++

		return "", false, true, nil
	}

	return string(raw), true, true, nil
}

// BytesRead returns the number of bytes consumed from the input, newlines and skipped
// records included.
func (s *LineSource) BytesRead() int64 {
	return s.bytesRead
}

// Skipped returns the number of records dropped because they were not valid UTF-8.
func (s *LineSource) Skipped() int64 {
	return s.skipped
}
