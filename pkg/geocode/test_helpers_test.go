package geocode

import (
	"context"
	"net/http"
	"strings"
)

// newRewriteClient creates an HTTP client that rewrites requests to a test server URL.
// All requests matching the target prefix are redirected to the test server.
func newRewriteClient(testServerURL, targetPrefix string) *http.Client {
	return &http.Client{
		Transport: &multiRewriteTransport{
			base:     http.DefaultTransport,
			rewrites: map[string]string{targetPrefix: testServerURL},
		},
	}
}

// multiRewriteTransport rewrites URLs based on a prefix map.
type multiRewriteTransport struct {
	base     http.RoundTripper
	rewrites map[string]string
}

func (t *multiRewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	origURL := req.URL.String()
	for prefix, testURL := range t.rewrites {
		if strings.HasPrefix(origURL, prefix) {
			newReq := req.Clone(req.Context())
			parsed, err := req.URL.Parse(testURL + origURL[len(prefix):])
			if err != nil {
				return nil, err
			}
			newReq.URL = parsed
			newReq.Host = parsed.Host
			return t.base.RoundTrip(newReq)
		}
	}
	return t.base.RoundTrip(req)
}

// stubProvider is a Provider with canned answers.
type stubProvider struct {
	name      string
	available bool
	result    *Result
	err       error
	calls     int
	queries   []string
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return s.available }

func (s *stubProvider) Geocode(_ context.Context, query string) (*Result, error) {
	s.calls++
	s.queries = append(s.queries, query)
	return s.result, s.err
}
