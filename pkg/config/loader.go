package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

// EnvPrefix prefixes environment overrides: CSVGRAPH_STORAGE overrides
// storage and CSVGRAPH_CSV_DELIMITER overrides csv.delimiter.
const EnvPrefix = "CSVGRAPH"

// Load reads a YAML configuration file on top of Default and applies
// environment overrides. ${VAR_NAME} references in the file are replaced
// with environment values before parsing. An empty path loads defaults and
// environment overrides only. Load does not validate.
func Load(filePath string) (*Config, error) {
	v := newViper()

	if filePath != "" {
		data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", filePath)
		}
		content := substituteEnvVars(string(data))
		if err := v.ReadConfig(strings.NewReader(content)); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML").
				WithDetail("path", filePath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}
	return cfg, nil
}

// Save writes cfg to a YAML file.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write config file").
			WithDetail("path", filePath)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

// setDefaults registers every scalar key so that AutomaticEnv can override
// keys absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("source", d.Source)
	v.SetDefault("source_id", d.SourceID)
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("storage", d.Storage)
	v.SetDefault("mapping_file", d.MappingFile)

	v.SetDefault("csv.delimiter", d.CSV.Delimiter)
	v.SetDefault("csv.comment", d.CSV.Comment)
	v.SetDefault("csv.lazy_quotes", d.CSV.LazyQuotes)
	v.SetDefault("csv.compression", d.CSV.Compression)

	v.SetDefault("s3.region", d.S3.Region)
	v.SetDefault("s3.endpoint", d.S3.Endpoint)
	v.SetDefault("s3.anonymous", d.S3.Anonymous)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("logging.encoding", d.Logging.Encoding)

	t := d.Observability.Tracing
	v.SetDefault("observability.tracing.enabled", t.Enabled)
	v.SetDefault("observability.tracing.service_name", t.ServiceName)
	v.SetDefault("observability.tracing.service_version", t.ServiceVersion)
	v.SetDefault("observability.tracing.environment", t.Environment)
	v.SetDefault("observability.tracing.sampling_rate", t.SamplingRate)
	v.SetDefault("observability.tracing.exporter", t.Exporter)
	v.SetDefault("observability.tracing.pretty_print", t.PrettyPrint)
	v.SetDefault("observability.tracing.batch_timeout", t.BatchTimeout)

	v.SetDefault("observability.metrics.enabled", d.Observability.Metrics.Enabled)
	v.SetDefault("observability.metrics.textfile", d.Observability.Metrics.Textfile)
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
