// Package pipeline runs the enrichment pass: each input row is validated,
// geocoded and, when both of its addresses resolve, written to a sink.
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/geoenrich/internal/contact"
	"github.com/sells-group/geoenrich/internal/sink"
)

// RowSource yields input rows in file order. Next returns io.EOF when done.
type RowSource interface {
	Next() (contact.Row, error)
}

// Progress receives one tick per row read.
type Progress interface {
	Add(n int) error
	Finish() error
}

// Stats summarizes a pass.
type Stats struct {
	Read      int `json:"read"`
	Invalid   int `json:"invalid"`
	Unmatched int `json:"unmatched"`
	Emitted   int `json:"emitted"`
}

// Pipeline processes rows strictly sequentially; no state is carried between rows.
type Pipeline struct {
	enricher *Enricher
	progress Progress
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress reports progress for every row read.
func WithProgress(p Progress) Option {
	return func(pl *Pipeline) {
		pl.progress = p
	}
}

// New creates a Pipeline.
func New(enricher *Enricher, opts ...Option) *Pipeline {
	p := &Pipeline{enricher: enricher}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reads every row from src and writes the enriched ones to dst, preserving
// input order. Invalid rows and rows whose addresses do not both geocode are
// skipped. Read, geocoding-context and sink errors end the run.
func (p *Pipeline) Run(ctx context.Context, src RowSource, dst sink.Sink) (Stats, error) {
	log := zap.L().With(zap.String("run_id", uuid.New().String()))
	log.Info("pipeline: starting")

	var stats Stats
	defer func() {
		if p.progress != nil {
			_ = p.progress.Finish()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return stats, eris.Wrap(err, "pipeline: context done")
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, eris.Wrap(err, "pipeline: read input")
		}
		stats.Read++
		if p.progress != nil {
			_ = p.progress.Add(1)
		}

		if err := contact.Validate(row); err != nil {
			stats.Invalid++
			log.Debug("pipeline: skipping invalid row", zap.Int("line", row.Line()), zap.Error(err))
			continue
		}

		enriched, err := p.enricher.Enrich(ctx, row)
		if err != nil {
			return stats, err
		}
		if enriched == nil {
			stats.Unmatched++
			log.Debug("pipeline: skipping row without coordinates", zap.Int("line", row.Line()))
			continue
		}

		if err := dst.Write(enriched.Header(), enriched.Fields()); err != nil {
			return stats, eris.Wrapf(err, "pipeline: write line %d", row.Line())
		}
		stats.Emitted++
	}

	log.Info("pipeline: complete",
		zap.Int("read", stats.Read),
		zap.Int("invalid", stats.Invalid),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("emitted", stats.Emitted),
	)
	return stats, nil
}
