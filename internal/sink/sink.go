// Package sink delivers enriched rows to standard output or an output CSV file.
package sink

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// Sink receives enriched rows one at a time.
type Sink interface {
	// Write emits one row. header names the row's fields in order.
	Write(header, fields []string) error
	Close() error
}

// WriterSink renders each row as a single CSV line, without a header.
// It is used for standard output.
type WriterSink struct {
	w *csv.Writer
}

// NewWriterSink creates a WriterSink over w. Closing the sink does not close w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: csv.NewWriter(w)}
}

// Write implements Sink. The header is ignored.
func (s *WriterSink) Write(_, fields []string) error {
	if err := s.w.Write(fields); err != nil {
		return eris.Wrap(err, "sink: write row")
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return eris.Wrap(err, "sink: flush row")
	}
	return nil
}

// Close implements Sink.
func (s *WriterSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return eris.Wrap(err, "sink: flush")
	}
	return nil
}
