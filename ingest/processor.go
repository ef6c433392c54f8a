// Package ingest drives the decoding and persistence of daily feed files.
package ingest

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridflow/bmra/config"
	"github.com/gridflow/bmra/decoder"
	"github.com/gridflow/bmra/errors"
	"github.com/gridflow/bmra/feed"
	"github.com/gridflow/bmra/records"
	"github.com/gridflow/bmra/store"
	"github.com/gridflow/bmra/units"
)

type Processor interface {
	// Process decodes and persists every message of a single file. Per message
	// failures are collected in the summary. A fatal error aborts the file and
	// nothing of it is persisted.
	Process(ctx context.Context, name string, r io.Reader) (*Summary, error)
	// ProcessFiles processes files concurrently, at most workers at a time.
	// Summaries are returned in the order of paths. A failing file does not
	// stop the others; the errors of all failed files are joined.
	ProcessFiles(ctx context.Context, paths []string, workers int) ([]*Summary, error)
}

type Params struct {
	fx.In

	Config     *config.Config
	Decoder    *decoder.Decoder
	Records    records.Repository
	Units      units.Registry
	Transactor store.Transactor
	Metrics    *Metrics
	Logger     *zap.SugaredLogger
}

func NewProcessor(p Params) Processor {
	return &processor{
		maxFailures: p.Config.MaxFailures,
		decoder:     p.Decoder,
		records:     p.Records,
		units:       p.Units,
		transactor:  p.Transactor,
		metrics:     p.Metrics,
		logger:      p.Logger,
	}
}

type processor struct {
	maxFailures int
	decoder     *decoder.Decoder
	records     records.Repository
	units       units.Registry
	transactor  store.Transactor
	metrics     *Metrics
	logger      *zap.SugaredLogger
}

// batch is the decoded content of a file waiting to be written.
type batch struct {
	records []records.Record
	units   mapset.Set[string]
}

func (p *processor) Process(ctx context.Context, name string, r io.Reader) (summary *Summary, err error) {
	summary = &Summary{Name: name, Started: time.Now()}
	defer func() {
		summary.Duration = time.Since(summary.Started)
		if p.metrics != nil {
			p.metrics.Observe(summary, err)
		}
	}()

	logger := p.logger.With("file", name)

	b, err := p.decode(summary, r, logger)
	if err != nil {
		return summary, err
	}

	if err = p.write(ctx, summary, b); err != nil {
		return summary, err
	}

	// Units are registered after the commit so an aborted file leaves no trace.
	for _, unitId := range b.units.ToSlice() {
		created, err := p.units.EnsureExists(ctx, unitId)
		if err != nil {
			return summary, err
		}
		if created {
			summary.NewUnits++
		}
	}

	logger.Infow("processed file", summary.LogFields()...)
	return summary, nil
}

func (p *processor) decode(summary *Summary, r io.Reader, logger *zap.SugaredLogger) (*batch, error) {
	reader, err := feed.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	b := &batch{units: mapset.NewThreadUnsafeSet[string]()}
	for reader.Next() {
		raw := reader.Message()
		summary.Seen++

		msg, err := p.decoder.Decode(raw)
		if err == nil {
			if msg.UnitID != "" {
				b.units.Add(msg.UnitID)
			}
			var record records.Record
			record, err = records.FromMessage(msg)
			if stderrors.Is(err, records.ErrUnprocessed) {
				summary.Unprocessed++
				continue
			}
			if err == nil {
				b.records = append(b.records, record)
				continue
			}
		}

		switch errors.ClassOf(err) {
		case errors.ClassSkip:
			logger.Debugw("skipped message", "reason", err)
			summary.Skipped++
		case errors.ClassMessage:
			logger.Debugw("failed message", "error", err)
			summary.Failed++
			if len(summary.Failures) < p.maxFailures {
				summary.Failures = append(summary.Failures, Failure{Raw: raw, Err: err})
			}
		default:
			logger.Errorw("aborting file", "error", err, "message", raw)
			return nil, fmt.Errorf("fatal error in message %d of %s: %w", summary.Seen, summary.Name, err)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", summary.Name, err)
	}
	return b, nil
}

func (p *processor) write(ctx context.Context, summary *Summary, b *batch) error {
	if len(b.records) == 0 {
		return nil
	}

	var inserted, replaced, duplicate int
	err := p.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		// The transaction may be retried, so counts start over on every attempt.
		inserted, replaced, duplicate = 0, 0, 0
		for _, record := range b.records {
			outcome, err := records.Save(ctx, p.records, record)
			if err != nil {
				return err
			}
			switch outcome {
			case records.Inserted:
				inserted++
			case records.Replaced:
				replaced++
			case records.Duplicate:
				duplicate++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Counts are only reported for a committed transaction.
	summary.Inserted, summary.Replaced, summary.Duplicate = inserted, replaced, duplicate
	return nil
}

func (p *processor) ProcessFiles(ctx context.Context, paths []string, workers int) ([]*Summary, error) {
	summaries := make([]*Summary, len(paths))
	errs := make([]error, len(paths))

	// Files are independent. A failing file does not cancel the others.
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			summaries[i], errs[i] = p.processFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return summaries, stderrors.Join(errs...)
}

func (p *processor) processFile(ctx context.Context, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	summary, err := p.Process(ctx, filepath.Base(path), f)
	if err != nil {
		return summary, fmt.Errorf("error processing %s: %w", path, err)
	}
	return summary, nil
}
