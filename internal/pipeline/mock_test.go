package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoenrich/internal/contact"
	"github.com/sells-group/geoenrich/pkg/geocode"
)

// --- Geocoder Mock ---

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Result), args.Error(1)
}

func matched(lat, lon float64) *geocode.Result {
	return &geocode.Result{
		Coordinate: geocode.Coordinate{Latitude: lat, Longitude: lon},
		Source:     "mock",
		Matched:    true,
	}
}

func unmatched() *geocode.Result {
	return &geocode.Result{Source: "mock"}
}

// --- Sink Mock ---

type memSink struct {
	headers [][]string
	rows    [][]string
	err     error
	closed  bool
}

func (s *memSink) Write(header, fields []string) error {
	if s.err != nil {
		return s.err
	}
	s.headers = append(s.headers, header)
	s.rows = append(s.rows, fields)
	return nil
}

func (s *memSink) Close() error {
	s.closed = true
	return nil
}

// --- Source Mock ---

type errSource struct {
	rows []contact.Row
	err  error
}

func (s *errSource) Next() (contact.Row, error) {
	if len(s.rows) == 0 {
		return contact.Row{}, s.err
	}
	row := s.rows[0]
	s.rows = s.rows[1:]
	return row, nil
}

// --- Progress Mock ---

type countingProgress struct {
	added    int
	finished bool
}

func (p *countingProgress) Add(n int) error {
	p.added += n
	return nil
}

func (p *countingProgress) Finish() error {
	p.finished = true
	return nil
}

// --- Fixtures ---

const testHeaderLine = "First Name,Last Name,Email,Residential Address Street,Residential Address Locality,Residential Address State,Residential Address Postcode,Postal Address Street,Postal Address Locality,Postal Address State,Postal Address Postcode"

const (
	janeLine      = "Jane,Citizen,jane@example.com,1 Macquarie St,Sydney,NSW,2000,PO Box 42,Melbourne,VIC,3000"
	janeResidence = "1 Macquarie St, Sydney, NSW, 2000"
	janePostal    = "PO Box 42, Melbourne, VIC, 3000"
)

// newSource parses a CSV body (without header) into a contact.Reader.
func newSource(t *testing.T, lines ...string) *contact.Reader {
	t.Helper()
	body := testHeaderLine + "\n" + strings.Join(lines, "\n") + "\n"
	r, err := contact.NewReader(strings.NewReader(body), contact.ReaderOptions{})
	require.NoError(t, err)
	return r
}

var errBoom = errors.New("boom")
