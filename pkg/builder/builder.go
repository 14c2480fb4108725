// Package builder converts row sources into property tables.
//
// A conversion has two steps. A Strategy allocates the storage, pre-scanning
// the source when it needs to know the size up front, and Fill streams the
// header and data rows into it:
//
//	b := builder.New(builder.Options{Namespace: "http://example.org/people"})
//	res, err := b.Build(ctx, builder.Hash, source.NewFile("people.csv", source.CSVOptions{}))
//
// The header row names the columns. Column keys are minted from the namespace
// and the header text unless the mapping overrides them, and every data row
// gets a subject minted from its ordinal and the source identifier. Cell
// values are typed by inference unless the column has an explicit datatype.
package builder

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/csvgraph/pkg/logger"
	"github.com/ajitpratap0/csvgraph/pkg/metrics"
	"github.com/ajitpratap0/csvgraph/pkg/observability"
	"github.com/ajitpratap0/csvgraph/pkg/source"
	"github.com/ajitpratap0/csvgraph/pkg/table"
)

// Builder runs conversions with a fixed set of options. It holds no state
// between calls and may be used from several goroutines.
type Builder struct {
	opts Options
}

// Result is the outcome of a conversion.
type Result struct {
	// Table is nil when the array strategy found the source empty.
	Table    table.PropertyTable
	Stats    *Stats
	Strategy string
	Duration time.Duration
}

// New returns a Builder using opts for every conversion.
func New(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build converts src into a table allocated by strategy. ctx is used for
// tracing and logging fields only; a conversion cannot be cancelled.
func (b *Builder) Build(ctx context.Context, strategy Strategy, src source.Source) (*Result, error) {
	timer := metrics.NewTimer(strategy.Name())
	ctx, span := observability.StartSpan(ctx, "csvgraph.build")
	span.SetAttribute("csvgraph.source", src.ID())
	span.SetAttribute("csvgraph.strategy", strategy.Name())

	log := b.opts.Logger
	if log == nil {
		log = logger.WithContext(ctx)
	}
	log = log.With(zap.String("source", src.ID()), zap.String("strategy", strategy.Name()))
	opts := b.opts
	opts.Logger = log

	res, err := b.build(strategy, src, opts)
	if err != nil {
		timer.Stop(metrics.ResultError)
		span.Finish(err)
		log.Error("conversion failed", zap.Error(err))
		return nil, err
	}

	result := metrics.ResultSuccess
	if res.Table == nil {
		result = metrics.ResultEmpty
	}
	res.Duration = timer.Stop(result)

	span.SetAttribute("csvgraph.rows", res.Stats.Rows)
	span.SetAttribute("csvgraph.columns", res.Stats.Columns)
	span.SetAttribute("csvgraph.cells", res.Stats.Cells)
	span.AddEvent("csvgraph.filled",
		attribute.Int("csvgraph.skipped", res.Stats.Skipped),
		attribute.Int("csvgraph.dropped", res.Stats.Dropped),
	)
	span.Finish(nil)

	log.Info("property table built",
		zap.String("result", result),
		zap.Int("rows", res.Stats.Rows),
		zap.Int("columns", res.Stats.Columns),
		zap.Int("cells", res.Stats.Cells),
		zap.Int("skipped", res.Stats.Skipped),
		zap.Int("dropped", res.Stats.Dropped),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

func (b *Builder) build(strategy Strategy, src source.Source, opts Options) (*Result, error) {
	t, err := strategy.NewTable(src)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return &Result{Stats: newStats(), Strategy: strategy.Name()}, nil
	}

	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	filled, stats, err := Fill(t, r, src.ID(), opts)
	if err != nil {
		return nil, err
	}
	return &Result{Table: filled, Stats: stats, Strategy: strategy.Name()}, nil
}

// BuildHashTable converts src into a growable HashTable in a single pass.
func (b *Builder) BuildHashTable(ctx context.Context, src source.Source) (*Result, error) {
	return b.Build(ctx, Hash, src)
}

// BuildArrayTable converts src into an ArrayTable sized by a pre-scan. The
// result's table is nil when src has no records.
func (b *Builder) BuildArrayTable(ctx context.Context, src source.Source) (*Result, error) {
	return b.Build(ctx, Array, src)
}
