package geocode

import (
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results      []googleResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
}

type googleResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		LocationType string `json:"location_type"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
}

// GoogleProvider geocodes via the Google Geocoding API.
type GoogleProvider struct {
	opts options
}

// NewGoogleProvider creates a GoogleProvider. It is unavailable until an API key is set.
func NewGoogleProvider(opts ...Option) *GoogleProvider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GoogleProvider{opts: o}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Available implements Provider.
func (p *GoogleProvider) Available() bool { return p.opts.googleKey != "" }

// Geocode implements Provider.
func (p *GoogleProvider) Geocode(ctx context.Context, query string) (*Result, error) {
	if p.opts.googleKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}
	if strings.TrimSpace(query) == "" {
		return &Result{Matched: false, Source: "google"}, nil
	}

	params := url.Values{
		"address": {query},
		"key":     {p.opts.googleKey},
	}

	var googleResp googleGeocodeResponse
	if err := getJSON(ctx, p.opts, "google", googleGeocodeURL+"?"+params.Encode(), &googleResp); err != nil {
		return nil, err
	}

	switch googleResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return &Result{Matched: false, Source: "google"}, nil
	default:
		// REQUEST_DENIED, OVER_QUERY_LIMIT etc. are provider failures, not misses.
		return nil, eris.Errorf("geocode: google status %s: %s", googleResp.Status, googleResp.ErrorMessage)
	}

	if len(googleResp.Results) == 0 {
		return &Result{Matched: false, Source: "google"}, nil
	}

	result := googleResp.Results[0]
	return &Result{
		Coordinate: Coordinate{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
		Source:      "google",
		Quality:     googleLocationTypeToQuality(result.Geometry.LocationType),
		DisplayName: result.FormattedAddress,
		Matched:     true,
	}, nil
}

// googleLocationTypeToQuality maps Google's location_type to our quality taxonomy.
func googleLocationTypeToQuality(locType string) string {
	switch strings.ToUpper(locType) {
	case "ROOFTOP":
		return "rooftop"
	case "RANGE_INTERPOLATED":
		return "range"
	case "GEOMETRIC_CENTER":
		return "centroid"
	default:
		return "approximate"
	}
}
