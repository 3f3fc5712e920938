// Package config loads geoenrich settings from geoenrich.yaml, GEOENRICH_* environment
// variables and command-line flags.
package config

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Provider names accepted in geocode.providers.
const (
	ProviderNominatim = "nominatim"
	ProviderCensus    = "census"
	ProviderGoogle    = "google"
)

var knownProviders = []string{ProviderNominatim, ProviderCensus, ProviderGoogle}

// Config holds the full application configuration.
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures the geocoding providers and the order they are tried in.
type GeocodeConfig struct {
	Providers       []string `yaml:"providers" mapstructure:"providers"`
	NominatimURL    string   `yaml:"nominatim_url" mapstructure:"nominatim_url"`
	UserAgent       string   `yaml:"user_agent" mapstructure:"user_agent"`
	Email           string   `yaml:"email" mapstructure:"email"`
	GoogleKey       string   `yaml:"google_api_key" mapstructure:"google_api_key"`
	CensusBenchmark string   `yaml:"census_benchmark" mapstructure:"census_benchmark"`
	TimeoutSecs     int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// InputConfig describes how the input CSV is decoded.
type InputConfig struct {
	Encoding  string `yaml:"encoding" mapstructure:"encoding"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// Comma returns the delimiter as a rune. Validate guarantees a single character.
func (c InputConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// OutputConfig configures output behavior.
type OutputConfig struct {
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"provider":   "geocode.providers",
	"google-key": "geocode.google_api_key",
	"encoding":   "input.encoding",
	"delimiter":  "input.delimiter",
	"log-level":  "log.level",
}

// Load reads configuration from file, environment and (optionally) flags.
// Flags only override other sources when set explicitly.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("geoenrich")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geocode.providers", []string{ProviderNominatim})
	v.SetDefault("geocode.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "geoenrich/1.0")
	v.SetDefault("geocode.email", "")
	v.SetDefault("geocode.google_api_key", "")
	v.SetDefault("geocode.census_benchmark", "Public_AR_Current")
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("input.delimiter", ",")
	v.SetDefault("output.progress", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, eris.Wrapf(err, "config: bind flag %s", name)
			}
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if len(c.Geocode.Providers) == 0 {
		return eris.New("config: geocode.providers must name at least one provider")
	}
	for i, p := range c.Geocode.Providers {
		p = strings.ToLower(strings.TrimSpace(p))
		if !slices.Contains(knownProviders, p) {
			return eris.Errorf("config: unknown geocode provider %q (want one of %s)", p, strings.Join(knownProviders, ", "))
		}
		c.Geocode.Providers[i] = p
	}
	if slices.Contains(c.Geocode.Providers, ProviderNominatim) && c.Geocode.UserAgent == "" {
		return eris.New("config: geocode.user_agent is required by nominatim")
	}
	if c.Geocode.TimeoutSecs <= 0 {
		return eris.Errorf("config: geocode.timeout_secs must be positive, got %d", c.Geocode.TimeoutSecs)
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return eris.Errorf("config: input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	return nil
}

// Redacted returns a copy safe to print, with API keys masked.
func (c Config) Redacted() Config {
	out := c
	out.Geocode.Providers = slices.Clone(c.Geocode.Providers)
	if out.Geocode.GoogleKey != "" {
		out.Geocode.GoogleKey = "********"
	}
	return out
}

// InitLogger initializes the global zap logger. Logs always go to stderr.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
