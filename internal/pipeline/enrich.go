package pipeline

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoenrich/internal/contact"
	"github.com/sells-group/geoenrich/pkg/geocode"
)

// Output column names appended to every enriched row. The spelling of
// "Resedential" is kept for compatibility with existing consumers.
const (
	HeaderResidentialLatitude  = "Resedential Latitude"
	HeaderResidentialLongitude = "Resedential Longitude"
	HeaderPostalLatitude       = "Postal Latitude"
	HeaderPostalLongitude      = "Postal Longitude"
)

// OutputHeaders lists the appended columns in output order.
var OutputHeaders = []string{
	HeaderResidentialLatitude,
	HeaderResidentialLongitude,
	HeaderPostalLatitude,
	HeaderPostalLongitude,
}

// EnrichedRow is an input row plus the coordinates of both of its addresses.
type EnrichedRow struct {
	Row         contact.Row
	Residential geocode.Coordinate
	Postal      geocode.Coordinate
}

// Header returns the input header names followed by OutputHeaders.
func (e *EnrichedRow) Header() []string {
	return append(e.Row.Header().Names(), OutputHeaders...)
}

// Fields returns the input values followed by the four coordinates, in the
// order of OutputHeaders.
func (e *EnrichedRow) Fields() []string {
	return append(e.Row.Values(),
		formatCoordinate(e.Residential.Latitude),
		formatCoordinate(e.Residential.Longitude),
		formatCoordinate(e.Postal.Latitude),
		formatCoordinate(e.Postal.Longitude),
	)
}

// formatCoordinate renders the shortest decimal that round-trips, e.g. -33.8.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Enricher geocodes both addresses of a row and merges the coordinates into it.
type Enricher struct {
	geocoder geocode.Client
}

// NewEnricher creates an Enricher backed by gc.
func NewEnricher(gc geocode.Client) *Enricher {
	return &Enricher{geocoder: gc}
}

// Geocode looks up the residential and postal address of row, one query each.
// ok is false unless both lookups matched. Lookup failures count as misses;
// only a done context is returned as an error.
func (e *Enricher) Geocode(ctx context.Context, row contact.Row) (residential, postal geocode.Coordinate, ok bool, err error) {
	residential, resOK, err := e.lookup(ctx, row, contact.Residential)
	if err != nil {
		return geocode.Coordinate{}, geocode.Coordinate{}, false, err
	}
	postal, postOK, err := e.lookup(ctx, row, contact.Postal)
	if err != nil {
		return geocode.Coordinate{}, geocode.Coordinate{}, false, err
	}
	if !resOK || !postOK {
		return geocode.Coordinate{}, geocode.Coordinate{}, false, nil
	}
	return residential, postal, true, nil
}

// Enrich geocodes row and returns the merged row, or nil when either address
// could not be geocoded.
func (e *Enricher) Enrich(ctx context.Context, row contact.Row) (*EnrichedRow, error) {
	residential, postal, ok, err := e.Geocode(ctx, row)
	if err != nil || !ok {
		return nil, err
	}
	return &EnrichedRow{
		Row:         row,
		Residential: residential,
		Postal:      postal,
	}, nil
}

func (e *Enricher) lookup(ctx context.Context, row contact.Row, kind contact.AddressKind) (geocode.Coordinate, bool, error) {
	query := contact.BuildAddress(row, kind)

	result, err := e.geocoder.Geocode(ctx, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return geocode.Coordinate{}, false, eris.Wrap(ctxErr, "enrich: geocode")
		}
		zap.L().Warn("enrich: geocode failed, treating as no match",
			zap.Int("line", row.Line()),
			zap.Stringer("address", kind),
			zap.Error(err),
		)
		return geocode.Coordinate{}, false, nil
	}
	if result == nil || !result.Matched {
		return geocode.Coordinate{}, false, nil
	}

	zap.L().Debug("enrich: geocoded",
		zap.Int("line", row.Line()),
		zap.Stringer("address", kind),
		zap.String("source", result.Source),
		zap.String("quality", result.Quality),
	)
	return result.Coordinate, true, nil
}

