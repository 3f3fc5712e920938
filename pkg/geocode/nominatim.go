package geocode

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// nominatimPlace mirrors the relevant parts of a jsonv2 search result.
// Nominatim encodes coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	PlaceRank   int    `json:"place_rank"`
}

// NominatimProvider geocodes via an OpenStreetMap Nominatim instance.
type NominatimProvider struct {
	opts options
}

// NewNominatimProvider creates a NominatimProvider.
func NewNominatimProvider(opts ...Option) *NominatimProvider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &NominatimProvider{opts: o}
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// Available implements Provider.
func (p *NominatimProvider) Available() bool { return p.opts.userAgent != "" }

// Geocode implements Provider.
func (p *NominatimProvider) Geocode(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Matched: false, Source: "nominatim"}, nil
	}

	params := url.Values{
		"q":      {query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}
	if p.opts.email != "" {
		params.Set("email", p.opts.email)
	}
	reqURL := strings.TrimRight(p.opts.nominatimURL, "/") + "/search?" + params.Encode()

	var places []nominatimPlace
	if err := getJSON(ctx, p.opts, "nominatim", reqURL, &places); err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return &Result{Matched: false, Source: "nominatim"}, nil
	}

	place := places[0]
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: nominatim parse lat %q", place.Lat)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: nominatim parse lon %q", place.Lon)
	}

	return &Result{
		Coordinate:  Coordinate{Latitude: lat, Longitude: lon},
		Source:      "nominatim",
		Quality:     placeRankToQuality(place.PlaceRank),
		DisplayName: place.DisplayName,
		Matched:     true,
	}, nil
}

// placeRankToQuality maps Nominatim's place_rank (0 = continent, 30 = building)
// to our quality taxonomy.
func placeRankToQuality(rank int) string {
	switch {
	case rank >= 30:
		return "rooftop"
	case rank >= 26:
		return "range"
	case rank >= 16:
		return "centroid"
	default:
		return "approximate"
	}
}
