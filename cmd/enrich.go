package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoenrich/internal/config"
	"github.com/sells-group/geoenrich/internal/contact"
	"github.com/sells-group/geoenrich/internal/pipeline"
	"github.com/sells-group/geoenrich/internal/sink"
	"github.com/sells-group/geoenrich/pkg/geocode"
)

var enrichNoProgress bool

func init() {
	rootCmd.Flags().BoolVar(&enrichNoProgress, "no-progress", false, "disable the progress spinner when writing to a file")
}

// runEnrich performs one sequential pass over the input file.
func runEnrich(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Please provide the input CSV file.")
		return nil
	}
	inputPath := args[0]
	var outputPath string
	if len(args) > 1 {
		outputPath = args[1]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gc, err := newGeocoder(cfg.Geocode)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return eris.Wrapf(err, "enrich: open input %s", inputPath)
	}
	defer in.Close() //nolint:errcheck

	src, err := contact.NewReader(in, contact.ReaderOptions{
		Encoding:  cfg.Input.Encoding,
		Delimiter: cfg.Input.Comma(),
	})
	if err != nil {
		return eris.Wrapf(err, "enrich: read %s", inputPath)
	}

	var dst sink.Sink
	if outputPath != "" {
		fs, openErr := sink.OpenFileSink(outputPath)
		if openErr != nil {
			return openErr
		}
		dst = fs
	} else {
		dst = sink.NewWriterSink(cmd.OutOrStdout())
	}

	var opts []pipeline.Option
	if bar := newProgressBar(outputPath != ""); bar != nil {
		opts = append(opts, pipeline.WithProgress(bar))
	}

	zap.L().Info("enrich: starting",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Strings("providers", gc.Providers()),
	)

	_, runErr := pipeline.New(pipeline.NewEnricher(gc), opts...).Run(ctx, src, dst)
	closeErr := dst.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// newGeocoder builds the provider cascade named in cfg.Providers.
func newGeocoder(cfg config.GeocodeConfig) (*geocode.CascadeClient, error) {
	opts := []geocode.Option{
		geocode.WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second),
		geocode.WithUserAgent(cfg.UserAgent),
		geocode.WithEmail(cfg.Email),
		geocode.WithGoogleAPIKey(cfg.GoogleKey),
	}
	if cfg.NominatimURL != "" {
		opts = append(opts, geocode.WithNominatimURL(cfg.NominatimURL))
	}
	if cfg.CensusBenchmark != "" {
		opts = append(opts, geocode.WithCensusBenchmark(cfg.CensusBenchmark))
	}

	providers := make([]geocode.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		p, err := geocode.NewProvider(name, opts...)
		if err != nil {
			return nil, eris.Wrap(err, "enrich: build geocoder")
		}
		providers = append(providers, p)
	}
	return geocode.NewCascadeClient(providers...), nil
}

// newProgressBar returns a spinner on stderr, or nil when output goes to stdout,
// progress is disabled, or stderr is not a terminal.
func newProgressBar(toFile bool) *progressbar.ProgressBar {
	if !toFile || enrichNoProgress || !cfg.Output.Progress || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Geocoding rows"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}
