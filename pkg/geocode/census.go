package geocode

import (
	"context"
	"net/url"
	"strings"
)

const (
	censusOneLineURL       = "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress"
	defaultCensusBenchmark = "Public_AR_Current"
)

// censusOneLineResponse is the JSON response from the Census single-address API.
type censusOneLineResponse struct {
	Result struct {
		AddressMatches []censusAddressMatch `json:"addressMatches"`
	} `json:"result"`
}

type censusAddressMatch struct {
	Coordinates struct {
		X float64 `json:"x"` // longitude
		Y float64 `json:"y"` // latitude
	} `json:"coordinates"`
	MatchedAddress string `json:"matchedAddress"`
}

// CensusProvider geocodes US addresses via the Census one-line address API.
type CensusProvider struct {
	opts options
}

// NewCensusProvider creates a CensusProvider.
func NewCensusProvider(opts ...Option) *CensusProvider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CensusProvider{opts: o}
}

// Name implements Provider.
func (p *CensusProvider) Name() string { return "census" }

// Available implements Provider.
func (p *CensusProvider) Available() bool { return true }

// Geocode implements Provider.
func (p *CensusProvider) Geocode(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Matched: false, Source: "census"}, nil
	}

	params := url.Values{
		"address":   {query},
		"benchmark": {p.opts.censusBenchmark},
		"format":    {"json"},
	}

	var censusResp censusOneLineResponse
	if err := getJSON(ctx, p.opts, "census", censusOneLineURL+"?"+params.Encode(), &censusResp); err != nil {
		return nil, err
	}

	if len(censusResp.Result.AddressMatches) == 0 {
		return &Result{Matched: false, Source: "census"}, nil
	}

	match := censusResp.Result.AddressMatches[0]
	return &Result{
		Coordinate: Coordinate{
			Latitude:  match.Coordinates.Y,
			Longitude: match.Coordinates.X,
		},
		Source:      "census",
		Quality:     "range", // one-line matches are interpolated along TIGER address ranges
		DisplayName: match.MatchedAddress,
		Matched:     true,
	}, nil
}
