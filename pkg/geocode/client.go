// Package geocode resolves free-text addresses to coordinates using Nominatim
// (OpenStreetMap), the US Census Geocoder and the Google Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Client geocodes a free-text address.
type Client interface {
	// Geocode returns the best-ranked match for query. A query with no
	// candidates yields a Result with Matched=false and a nil error.
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Result holds the geocoding output for a query.
type Result struct {
	Coordinate
	Source      string // "nominatim", "census" or "google"
	Quality     string // "rooftop", "range", "centroid", "approximate"
	DisplayName string
	Matched     bool
}

// Option configures a provider.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	userAgent       string
	email           string
	nominatimURL    string
	googleKey       string
	censusBenchmark string
}

func defaultOptions() options {
	return options{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		userAgent:       "geoenrich/1.0",
		nominatimURL:    defaultNominatimURL,
		censusBenchmark: defaultCensusBenchmark,
	}
}

// WithHTTPClient sets a custom HTTP client for provider requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the request timeout on a fresh HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpClient = &http.Client{Timeout: d}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Nominatim's usage policy rejects requests without one.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithEmail sets the contact address Nominatim asks heavy users to supply.
func WithEmail(email string) Option {
	return func(o *options) {
		o.email = email
	}
}

// WithNominatimURL points the Nominatim provider at a self-hosted instance.
func WithNominatimURL(base string) Option {
	return func(o *options) {
		o.nominatimURL = base
	}
}

// WithGoogleAPIKey sets the Google Geocoding API key.
func WithGoogleAPIKey(key string) Option {
	return func(o *options) {
		o.googleKey = key
	}
}

// WithCensusBenchmark selects the Census address benchmark.
func WithCensusBenchmark(benchmark string) Option {
	return func(o *options) {
		o.censusBenchmark = benchmark
	}
}

// getJSON issues a GET request and decodes a JSON body into out.
func getJSON(ctx context.Context, o options, source, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return eris.Wrapf(err, "geocode: %s build request", source)
	}
	req.Header.Set("Accept", "application/json")
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return eris.Wrapf(err, "geocode: %s request", source)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("geocode: %s returned status %d", source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "geocode: %s read body", source)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "geocode: %s parse response", source)
	}
	return nil
}
