package contact

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrMissingHeader is returned when a required column is absent from the input header.
var ErrMissingHeader = eris.New("missing required header")

// Header is the parsed header row shared by every Row of an input file.
type Header struct {
	names []string
	index map[Field]int
}

// ParseHeader maps raw header names onto the required fields. It fails when any
// required field has no matching column. When two columns normalize to the same
// key, the first one wins.
func ParseHeader(names []string) (*Header, error) {
	h := &Header{
		names: slices.Clone(names),
		index: make(map[Field]int, len(RequiredFields)),
	}

	known := make(map[string]Field, len(RequiredFields))
	for _, f := range RequiredFields {
		known[string(f)] = f
	}

	for i, name := range names {
		f, ok := known[HeaderKey(name)]
		if !ok {
			continue
		}
		if _, dup := h.index[f]; !dup {
			h.index[f] = i
		}
	}

	var missing []string
	for _, f := range RequiredFields {
		if _, ok := h.index[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return nil, eris.Wrapf(ErrMissingHeader, "contact: %s", strings.Join(missing, ", "))
	}

	return h, nil
}

// Names returns the raw header names in file order.
func (h *Header) Names() []string {
	return slices.Clone(h.names)
}

// Len returns the number of header columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Row is one parsed data line together with its header.
type Row struct {
	header *Header
	values []string
	line   int
}

// NewRow builds a Row. line is the 1-based line number in the input, or 0 if unknown.
func NewRow(h *Header, values []string, line int) Row {
	return Row{header: h, values: values, line: line}
}

// Get returns the value of f and whether its column exists on this line.
// Short (ragged) lines report trailing fields as absent.
func (r Row) Get(f Field) (string, bool) {
	idx, ok := r.header.index[f]
	if !ok || idx >= len(r.values) {
		return "", false
	}
	return r.values[idx], true
}

// Value returns the value of f, or "" when absent.
func (r Row) Value(f Field) string {
	v, _ := r.Get(f)
	return v
}

// Header returns the row's header.
func (r Row) Header() *Header {
	return r.header
}

// Line returns the 1-based input line the row started on.
func (r Row) Line() int {
	return r.line
}

// Values returns the row's values aligned to the header: missing trailing
// values are empty and values beyond the last header column are dropped.
func (r Row) Values() []string {
	out := make([]string, r.header.Len())
	copy(out, r.values)
	return out
}
