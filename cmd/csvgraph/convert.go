package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/csvgraph/pkg/builder"
	"github.com/ajitpratap0/csvgraph/pkg/config"
	"github.com/ajitpratap0/csvgraph/pkg/logger"
	"github.com/ajitpratap0/csvgraph/pkg/observability"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
	"github.com/ajitpratap0/csvgraph/pkg/report"
	"github.com/ajitpratap0/csvgraph/pkg/table"
)

// runFlags holds the flags shared by convert and inspect. Flags override the
// configuration file only when they are set explicitly.
type runFlags struct {
	configFile  string
	source      string
	sourceID    string
	namespace   string
	storage     string
	mappingFile string
	mapping     map[string]string
	datatypes   []string
	delimiter   string
	compression string
	logLevel    string
	s3Region    string
	s3Endpoint  string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to a YAML configuration file")
	fs.StringVarP(&f.source, "source", "s", "", "Path to the CSV file to convert, or an s3://bucket/key object")
	fs.StringVar(&f.sourceID, "source-id", "", "Identifier used to mint row subjects (defaults to the source path)")
	fs.StringVarP(&f.namespace, "namespace", "n", "", "Base namespace of minted column keys (defaults to the source identifier)")
	fs.StringVar(&f.storage, "storage", builder.HashName, "Table strategy: hashmap (one pass) or array (pre-scan, fixed size)")
	fs.StringVar(&f.mappingFile, "mapping-file", "", "Path to a .properties file of column overrides")
	fs.StringToStringVarP(&f.mapping, "map", "m", nil, "Column override, ordinal=identifier>datatype (repeatable)")
	fs.StringSliceVar(&f.datatypes, "datatype", nil, "Custom datatype IRI accepted in overrides (repeatable)")
	fs.StringVar(&f.delimiter, "delimiter", ",", `Field delimiter, a single character or \t`)
	fs.StringVar(&f.compression, "compression", "auto", "Input compression: auto, none, gzip, zstd, lz4, snappy, s2")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.s3Region, "s3-region", "", "AWS region of s3:// sources")
	fs.StringVar(&f.s3Endpoint, "s3-endpoint", "", "Endpoint of an S3-compatible store for s3:// sources")
}

// load reads the configuration file and applies explicitly set flags.
func (f *runFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.Source = f.source
	}
	if changed("source-id") {
		cfg.SourceID = f.sourceID
	}
	if changed("namespace") {
		cfg.Namespace = f.namespace
	}
	if changed("storage") {
		cfg.Storage = f.storage
	}
	if changed("mapping-file") {
		cfg.MappingFile = f.mappingFile
	}
	if changed("map") {
		if cfg.Mapping == nil {
			cfg.Mapping = make(map[string]string, len(f.mapping))
		}
		for k, v := range f.mapping {
			cfg.Mapping[k] = v
		}
	}
	if changed("datatype") {
		cfg.Datatypes = append(cfg.Datatypes, f.datatypes...)
	}
	if changed("delimiter") {
		cfg.CSV.Delimiter = f.delimiter
	}
	if changed("compression") {
		cfg.CSV.Compression = f.compression
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("s3-region") {
		cfg.S3.Region = f.s3Region
	}
	if changed("s3-endpoint") {
		cfg.S3.Endpoint = f.s3Endpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// conversion is a finished run.
type conversion struct {
	cfg       *config.Config
	sourceID  string
	result    *builder.Result
	resources *report.Resources
}

// run performs one conversion described by cfg, with logging, tracing and
// the optional metrics dump set up around it.
func run(ctx context.Context, cfg *config.Config, measure bool) (*conversion, error) {
	if err := logger.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("logging configuration error: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdown, err := observability.InitTracing(cfg.Observability.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing configuration error: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return nil, err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, logger.RunIDKey, uuid.NewString())
	ctx = context.WithValue(ctx, logger.SourceKey, src.ID())
	ctx = context.WithValue(ctx, logger.StrategyKey, strategy.Name())
	log := logger.WithContext(ctx).With(zap.String("component", "csvgraph-cli"))

	opts, err := cfg.BuilderOptions(log)
	if err != nil {
		return nil, err
	}

	var monitor *report.ResourceMonitor
	if measure {
		monitor = report.NewResourceMonitor()
	}

	log.Info("starting conversion", zap.String("source", src.ID()))
	res, err := builder.New(opts).Build(ctx, strategy, src)
	if err != nil {
		return nil, err
	}

	conv := &conversion{cfg: cfg, sourceID: src.ID(), result: res}
	if monitor != nil {
		conv.resources = monitor.Usage()
	}

	if m := cfg.Observability.Metrics; m.Enabled {
		if err := prometheus.WriteToTextfile(m.Textfile, prometheus.DefaultGatherer); err != nil {
			log.Warn("failed to write metrics", zap.String("textfile", m.Textfile), zap.Error(err))
		}
	}
	return conv, nil
}

func newConvertCmd() *cobra.Command {
	flags := &runFlags{}
	var format string
	var sample int
	var measure bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a CSV file and print a summary of the property table",
		Long: `Convert a CSV file into a property table and print a JSON or YAML summary:
column keys with value counts and datatypes, and a sample of rows.

Example:
  csvgraph convert --source people.csv --namespace http://example.org/people --map 2='>http://www.w3.org/2001/XMLSchema#integer'
  csvgraph convert --config csvgraph.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			conv, err := run(cmd.Context(), cfg, measure)
			if err != nil {
				return err
			}

			summary := report.Summarize(conv.sourceID, conv.result, sample)
			summary.Resources = conv.resources
			return report.Write(cmd.OutOrStdout(), f, summary)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Summary format: json or yaml")
	cmd.Flags().IntVar(&sample, "sample", 5, "Number of rows to include in the summary")
	cmd.Flags().BoolVar(&measure, "resources", false, "Include process resource usage in the summary")
	return cmd
}

func newInspectCmd() *cobra.Command {
	flags := &runFlags{}
	var rows int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the columns and first rows of the property table built from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			conv, err := run(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), conv.result.Table, rows)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows to print")
	return cmd
}

// printTable writes the column keys of t and the statements of its first
// rows, one per line.
func printTable(out io.Writer, t table.PropertyTable, rows int) error {
	if t == nil {
		_, err := fmt.Fprintln(out, "empty source: no table built")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCOLUMN\tVALUES")
	for i, col := range t.Columns() {
		fmt.Fprintf(w, "%d\t%s\t%d\n", i, col.Key(), len(col.Values()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for i, r := range t.Rows() {
		if i >= rows {
			fmt.Fprintf(out, "... %d more rows\n", len(t.Rows())-rows)
			break
		}
		for _, tr := range table.Find(t, r.Subject(), rdf.Node{}, rdf.Node{}) {
			fmt.Fprintln(out, tr)
		}
	}
	return nil
}
