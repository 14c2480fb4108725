package builder

import (
	stderrors "errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/infer"
	"github.com/ajitpratap0/csvgraph/pkg/logger"
	"github.com/ajitpratap0/csvgraph/pkg/metrics"
	"github.com/ajitpratap0/csvgraph/pkg/mint"
	"github.com/ajitpratap0/csvgraph/pkg/override"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
	"github.com/ajitpratap0/csvgraph/pkg/source"
	"github.com/ajitpratap0/csvgraph/pkg/table"
)

// Options configures one conversion. A zero Options is usable: the namespace
// defaults to the source identifier, datatypes to rdf.DefaultRegistry and the
// logger to the global one.
type Options struct {
	// Namespace is the base of minted column keys.
	Namespace string
	// Mapping holds per-column overrides keyed by 1-based ordinal.
	Mapping override.Mapping
	// Datatypes lists the datatype IRIs explicit overrides may use.
	Datatypes *rdf.Registry
	Logger    *zap.Logger
}

func (o Options) namespace(sourceID string) string {
	if o.Namespace != "" {
		return o.Namespace
	}
	return sourceID
}

func (o Options) datatypes() *rdf.Registry {
	if o.Datatypes != nil {
		return o.Datatypes
	}
	return rdf.DefaultRegistry()
}

// Stats describes what a fill wrote.
type Stats struct {
	// Rows is the number of data rows, header excluded.
	Rows int `json:"rows" yaml:"rows"`
	// Columns is the number of columns, row-index column included.
	Columns int `json:"columns" yaml:"columns"`
	// Cells counts data cells set; row-index cells are not included.
	Cells int `json:"cells" yaml:"cells"`
	// Skipped counts fields that were empty after trimming.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Dropped counts fields beyond the header width.
	Dropped  int                `json:"dropped" yaml:"dropped"`
	Inferred map[infer.Kind]int `json:"inferred" yaml:"inferred"`
}

func newStats() *Stats {
	return &Stats{Inferred: make(map[infer.Kind]int)}
}

// Fill reads the header and every data row from r into t and returns t.
//
// A nil t means the allocating strategy found the source empty; Fill then
// returns a nil table without reading. A stream with no records leaves t
// untouched. Read failures are fatal with ErrorTypeFile and storage failures,
// such as two columns minting the same key, are fatal with ErrorTypeData.
// Invalid column overrides are never fatal: they are logged and ignored.
func Fill(t table.PropertyTable, r source.Reader, sourceID string, opts Options) (table.PropertyTable, *Stats, error) {
	stats := newStats()
	if t == nil {
		return nil, stats, nil
	}
	log := logger.OrDefault(opts.Logger).With(zap.String("source", sourceID))

	header, err := r.Read()
	if stderrors.Is(err, io.EOF) {
		log.Debug("source has no records")
		return t, stats, nil
	}
	if err != nil {
		return nil, stats, readError(err, sourceID, 0)
	}

	f := &filler{
		table:     t,
		sourceID:  sourceID,
		datatypes: opts.datatypes(),
		stats:     stats,
		log:       log,
	}
	if err := f.header(header, opts); err != nil {
		return nil, stats, err
	}

	for ordinal := 1; ; ordinal++ {
		rec, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, readError(err, sourceID, ordinal)
		}
		if err := f.row(ordinal, rec); err != nil {
			return nil, stats, err
		}
	}

	stats.Columns = len(t.Columns())
	return t, stats, nil
}

func readError(err error, sourceID string, ordinal int) error {
	return errors.Wrap(err, errors.ErrorTypeFile, "failed to read source").
		WithDetail("source", sourceID).
		WithDetail("row", ordinal)
}

type filler struct {
	table     table.PropertyTable
	sourceID  string
	datatypes *rdf.Registry
	stats     *Stats
	log       *zap.Logger

	rowColumn table.Column
	columns   []table.Column
	// explicit datatype per header index; "" means infer
	explicit []string
}

func (f *filler) header(header []string, opts Options) error {
	rowColumn, err := f.table.CreateColumn(mint.RowKey)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to create row-index column")
	}
	f.rowColumn = rowColumn

	resolver := override.NewResolver(opts.Mapping, f.log)
	namespace := opts.namespace(f.sourceID)
	f.columns = make([]table.Column, len(header))
	f.explicit = make([]string, len(header))

	for i, name := range header {
		ordinal := i + 1
		ov := resolver.Resolve(ordinal)
		key := ov.Key(mint.ColumnKey(namespace, name))

		col, err := f.table.CreateColumn(rdf.NewURI(key))
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "failed to create column").
				WithDetail("column", ordinal).
				WithDetail("header", name)
		}
		f.columns[i] = col

		if ov.Datatype != "" {
			if !f.datatypes.Lookup(ov.Datatype) {
				f.log.Warn("unregistered column datatype, values will be plain literals",
					zap.Int("column", ordinal),
					zap.String("datatype", ov.Datatype),
				)
			}
			f.explicit[i] = ov.Datatype
		}

		f.log.Debug("column resolved",
			zap.Int("column", ordinal),
			zap.String("header", name),
			zap.String("key", key),
			zap.String("datatype", ov.Datatype),
		)
	}
	return nil
}

func (f *filler) row(ordinal int, rec []string) error {
	subject := rdf.NewURI(mint.RowSubject(ordinal, f.sourceID))
	r, err := f.table.CreateRow(subject)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to create row").
			WithDetail("row", ordinal)
	}
	if err := r.SetValue(f.rowColumn, rdf.NewIntegerLiteral(ordinal)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to set row index").
			WithDetail("row", ordinal)
	}

	for i, raw := range rec {
		if i >= len(f.columns) {
			f.stats.Dropped += len(rec) - i
			break
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			f.stats.Skipped++
			continue
		}

		node, kind := infer.InferKind(value, f.explicit[i], f.datatypes)
		if err := r.SetValue(f.columns[i], node); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "failed to set cell").
				WithDetail("row", ordinal).
				WithDetail("column", i+1)
		}
		f.stats.Cells++
		f.stats.Inferred[kind]++
		metrics.Cells.WithLabelValues(string(kind)).Inc()
	}

	f.stats.Rows++
	metrics.RowsFilled.Inc()
	return nil
}
