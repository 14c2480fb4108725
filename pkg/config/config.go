package config

import (
	"context"
	"strconv"
	"strings"

	"github.com/ajitpratap0/csvgraph/pkg/builder"
	"github.com/ajitpratap0/csvgraph/pkg/compression"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/logger"
	"github.com/ajitpratap0/csvgraph/pkg/observability"
	"github.com/ajitpratap0/csvgraph/pkg/source"
)

// Config is the complete configuration of a conversion.
type Config struct {
	// Source is the path of the CSV file to convert, or an s3://bucket/key
	// URI.
	Source string `yaml:"source" mapstructure:"source"`
	// SourceID identifies the source when minting row subjects and the
	// default namespace. It defaults to Source.
	SourceID string `yaml:"source_id,omitempty" mapstructure:"source_id"`
	// Namespace is the base of minted column keys. It defaults to the
	// source identifier.
	Namespace string `yaml:"namespace,omitempty" mapstructure:"namespace"`
	// Storage selects the table strategy: "hashmap" or "array".
	Storage string `yaml:"storage" mapstructure:"storage"`

	// Mapping holds column overrides keyed by 1-based ordinal, each
	// "identifier>datatype" with either side optional.
	Mapping map[string]string `yaml:"mapping,omitempty" mapstructure:"mapping"`
	// MappingFile is a .properties file of further overrides. Entries in
	// Mapping win over entries in the file.
	MappingFile string `yaml:"mapping_file,omitempty" mapstructure:"mapping_file"`
	// Datatypes lists custom datatype IRIs accepted in overrides on top of
	// the XSD and RDF built-ins.
	Datatypes []string `yaml:"datatypes,omitempty" mapstructure:"datatypes"`

	CSV           CSVConfig             `yaml:"csv" mapstructure:"csv"`
	S3            source.S3ClientConfig `yaml:"s3,omitempty" mapstructure:"s3"`
	Logging       logger.Config         `yaml:"logging" mapstructure:"logging"`
	Observability ObservabilityConfig   `yaml:"observability" mapstructure:"observability"`
}

// CSVConfig configures the tokenizer.
type CSVConfig struct {
	Delimiter   string `yaml:"delimiter" mapstructure:"delimiter"`
	Comment     string `yaml:"comment,omitempty" mapstructure:"comment"`
	LazyQuotes  bool   `yaml:"lazy_quotes" mapstructure:"lazy_quotes"`
	Compression string `yaml:"compression" mapstructure:"compression"`
}

// ObservabilityConfig configures tracing and metrics export.
type ObservabilityConfig struct {
	Tracing observability.TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig               `yaml:"metrics" mapstructure:"metrics"`
}

// MetricsConfig configures the Prometheus metrics dump written after a run.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Textfile receives the metrics in the text exposition format, for
	// node_exporter's textfile collector.
	Textfile string `yaml:"textfile,omitempty" mapstructure:"textfile"`
}

// Default returns a configuration with every optional field set.
func Default() *Config {
	return &Config{
		Storage: builder.HashName,
		CSV: CSVConfig{
			Delimiter:   ",",
			Compression: string(compression.Auto),
		},
		Logging: logger.DefaultConfig(),
		Observability: ObservabilityConfig{
			Tracing: observability.DefaultTracingConfig(),
		},
	}
}

// Validate checks the configuration for values that would fail a
// conversion. All errors are ErrorTypeConfig.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New(errors.ErrorTypeConfig, "source is required")
	}
	if strings.HasPrefix(c.Source, source.S3Scheme) {
		if _, _, ok := source.ParseS3URI(c.Source); !ok {
			return errors.New(errors.ErrorTypeConfig, "s3 source must be s3://bucket/key").
				WithDetail("source", c.Source)
		}
	}
	if _, err := builder.ParseStrategy(c.Storage); err != nil {
		return err
	}
	if _, err := c.CSVOptions(); err != nil {
		return err
	}
	for key := range c.Mapping {
		if n, err := strconv.Atoi(key); err != nil || n < 1 {
			return errors.New(errors.ErrorTypeConfig, "mapping keys must be 1-based column ordinals").
				WithDetail("key", key)
		}
	}
	if r := c.Observability.Tracing.SamplingRate; r < 0 || r > 1 {
		return errors.New(errors.ErrorTypeConfig, "tracing sampling_rate must be between 0 and 1").
			WithDetail("sampling_rate", r)
	}
	if c.Observability.Metrics.Enabled && c.Observability.Metrics.Textfile == "" {
		return errors.New(errors.ErrorTypeConfig, "metrics textfile is required when metrics are enabled")
	}
	return nil
}

// CSVOptions translates the csv section for the source package.
func (c *Config) CSVOptions() (source.CSVOptions, error) {
	var opts source.CSVOptions

	delim, err := source.ParseDelimiter(c.CSV.Delimiter)
	if err != nil {
		return opts, err
	}
	comment, err := source.ParseDelimiter(c.CSV.Comment)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrorTypeConfig, "invalid comment character")
	}
	alg, err := compression.ParseAlgorithm(c.CSV.Compression)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrorTypeConfig, "invalid compression")
	}

	opts.Delimiter = delim
	opts.Comment = comment
	opts.LazyQuotes = c.CSV.LazyQuotes
	opts.Compression = alg
	return opts, nil
}

// Strategy returns the configured table strategy.
func (c *Config) Strategy() (builder.Strategy, error) {
	return builder.ParseStrategy(c.Storage)
}

// OpenSource returns the configured source: an S3 object when Source is an
// s3:// URI and a local file otherwise.
func (c *Config) OpenSource(ctx context.Context) (source.Source, error) {
	opts, err := c.CSVOptions()
	if err != nil {
		return nil, err
	}

	if bucket, key, ok := source.ParseS3URI(c.Source); ok {
		client, err := source.NewS3Client(ctx, c.S3)
		if err != nil {
			return nil, err
		}
		obj := source.NewS3Object(client, bucket, key, opts)
		if c.SourceID != "" {
			obj = obj.WithID(c.SourceID)
		}
		return obj, nil
	}

	f := source.NewFile(c.Source, opts)
	if c.SourceID != "" {
		f = f.WithID(c.SourceID)
	}
	return f, nil
}
