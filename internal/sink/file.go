package sink

import (
	"encoding/csv"
	"os"
	"slices"

	"github.com/rotisserie/eris"
)

// ErrHeaderMismatch is returned when a row's header differs from the header the
// output file was started with.
var ErrHeaderMismatch = eris.New("header changed between rows")

// FileSink appends rows to a CSV file through one handle held for the whole run.
// The header line is written once, before the first row, and only when the file
// was empty when opened.
type FileSink struct {
	path        string
	f           *os.File
	w           *csv.Writer
	header      []string
	needsHeader bool
}

// OpenFileSink opens path for appending, creating it if absent.
func OpenFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, eris.Wrapf(err, "sink: open output %s", path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, eris.Wrapf(err, "sink: stat output %s", path)
	}

	return &FileSink{
		path:        path,
		f:           f,
		w:           csv.NewWriter(f),
		needsHeader: info.Size() == 0,
	}, nil
}

// Path returns the output path.
func (s *FileSink) Path() string {
	return s.path
}

// Write implements Sink.
func (s *FileSink) Write(header, fields []string) error {
	switch {
	case s.header == nil:
		s.header = slices.Clone(header)
		if s.needsHeader {
			if err := s.w.Write(s.header); err != nil {
				return eris.Wrap(err, "sink: write header")
			}
			s.needsHeader = false
		}
	case !slices.Equal(s.header, header):
		return eris.Wrapf(ErrHeaderMismatch, "sink: %s", s.path)
	}

	if err := s.w.Write(fields); err != nil {
		return eris.Wrap(err, "sink: write row")
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return eris.Wrapf(err, "sink: flush %s", s.path)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (s *FileSink) Close() error {
	s.w.Flush()
	flushErr := s.w.Error()
	if err := s.f.Close(); err != nil {
		return eris.Wrapf(err, "sink: close %s", s.path)
	}
	if flushErr != nil {
		return eris.Wrapf(flushErr, "sink: flush %s", s.path)
	}
	return nil
}
