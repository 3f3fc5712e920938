package geocode

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Provider represents a single geocoding backend.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, query string) (*Result, error)
	Available() bool
}

// NewProvider builds a provider by name ("nominatim", "census" or "google").
func NewProvider(name string, opts ...Option) (Provider, error) {
	switch name {
	case "nominatim":
		return NewNominatimProvider(opts...), nil
	case "census":
		return NewCensusProvider(opts...), nil
	case "google":
		p := NewGoogleProvider(opts...)
		if !p.Available() {
			return nil, eris.New("geocode: google provider requires an api key")
		}
		return p, nil
	default:
		return nil, eris.Errorf("geocode: unknown provider %q", name)
	}
}

// CascadeClient tries geocode providers in order until one matches.
type CascadeClient struct {
	providers []Provider
}

// NewCascadeClient creates a CascadeClient that tries providers in order.
func NewCascadeClient(providers ...Provider) *CascadeClient {
	return &CascadeClient{providers: providers}
}

// Providers returns the names of the configured providers in cascade order.
func (c *CascadeClient) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Geocode implements Client by trying each provider in order. Provider errors
// fall through to the next provider; only a done context is returned as an error.
func (c *CascadeClient) Geocode(ctx context.Context, query string) (*Result, error) {
	var lastResult *Result
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "cascade: context done")
		}
		if !p.Available() {
			continue
		}
		result, err := p.Geocode(ctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, eris.Wrap(ctxErr, "cascade: context done")
			}
			zap.L().Debug("cascade: provider error, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		if result != nil && result.Matched {
			return result, nil
		}
		if result != nil {
			lastResult = result
		}
	}

	// All providers missed.
	noMatch := &Result{Matched: false, Source: "cascade"}
	if lastResult != nil {
		noMatch.Source = lastResult.Source
	}
	return noMatch, nil
}
