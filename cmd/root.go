package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoenrich/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geoenrich <input.csv> [output.csv]",
	Short: "Geocode residential and postal addresses of a contact CSV",
	Long: `Reads a CSV of contacts, skips rows with missing names, a malformed email or an
incomplete residential or postal address, geocodes both addresses of every
remaining row and writes the row with four coordinate columns appended.

Rows are printed to stdout, or appended to output.csv when it is given (the file
is created if absent and the header is written once).`,
	Example: `  # parse input.csv and print enriched rows to stdout
  geoenrich input.csv

  # parse input.csv and append enriched rows to output.csv
  geoenrich input.csv output.csv`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runEnrich,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringSlice("provider", nil, "geocoding providers to try in order: nominatim, census, google (default nominatim)")
	pf.String("google-key", "", "Google Geocoding API key (enables the google provider)")
	pf.String("encoding", "", "input charset, e.g. windows-1252 (default utf-8)")
	pf.String("delimiter", "", `input field delimiter (default ",")`)
	pf.String("log-level", "", "log level: debug, info, warn, error (default info)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
