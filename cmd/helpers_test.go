package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/geoenrich/internal/config"
)

const testCSVHeader = "First Name,Last Name,Email,Residential Address Street,Residential Address Locality,Residential Address State,Residential Address Postcode,Postal Address Street,Postal Address Locality,Postal Address State,Postal Address Postcode\n"

// newNominatimServer answers /search with the coordinates registered for the q
// parameter and an empty result list otherwise.
func newNominatimServer(t *testing.T, coords map[string][2]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		c, ok := coords[r.URL.Query().Get("q")]
		if !ok {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = fmt.Fprintf(w, `[{"lat": %q, "lon": %q, "display_name": "match", "place_rank": 30}]`, c[0], c[1])
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testConfig returns a config pointing nominatim at srvURL.
func testConfig(srvURL string) *config.Config {
	return &config.Config{
		Geocode: config.GeocodeConfig{
			Providers:    []string{"nominatim"},
			NominatimURL: srvURL,
			UserAgent:    "geoenrich-test",
			TimeoutSecs:  5,
		},
		Input: config.InputConfig{Encoding: "utf-8", Delimiter: ","},
		Log:   config.LogConfig{Level: "error", Format: "json"},
	}
}

// useConfig installs c as the command config for the duration of the test.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

// captureOut redirects rootCmd output to a buffer-backed writer.
func captureOut(t *testing.T, w io.Writer) {
	t.Helper()
	rootCmd.SetOut(w)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetContext(context.Background())
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdirTemp moves into an empty directory so no geoenrich.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}
