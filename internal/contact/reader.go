package contact

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReaderOptions configures the CSV row reader.
type ReaderOptions struct {
	Encoding   string // input charset label, e.g. "windows-1252"; default utf-8
	Delimiter  rune   // default ','
	LazyQuotes bool
}

// Reader reads contact rows from CSV one at a time.
type Reader struct {
	csv    *csv.Reader
	header *Header
}

// NewReader decodes r, reads the header row and validates that every required
// column is present. A UTF-8 byte order mark is stripped.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	label := strings.TrimSpace(opts.Encoding)
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, eris.Wrapf(err, "contact: unsupported encoding %q", label)
	}

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow ragged rows; missing fields fail validation

	names, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("contact: input has no header row")
	}
	if err != nil {
		return nil, eris.Wrap(err, "contact: read header")
	}

	header, err := ParseHeader(names)
	if err != nil {
		return nil, err
	}

	return &Reader{csv: reader, header: header}, nil
}

// Header returns the parsed header.
func (r *Reader) Header() *Header {
	return r.header
}

// Next returns the next row, or io.EOF when the input is exhausted.
// Unparseable lines are returned as errors.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, eris.Wrap(err, "contact: read row")
	}
	line, _ := r.csv.FieldPos(0)
	return NewRow(r.header, record, line), nil
}
