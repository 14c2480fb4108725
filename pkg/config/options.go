package config

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/csvgraph/pkg/builder"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/override"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// BuilderOptions translates the configuration into per-conversion builder
// options. The mapping file, if any, is read here.
func (c *Config) BuilderOptions(log *zap.Logger) (builder.Options, error) {
	mapping, err := c.mapping()
	if err != nil {
		return builder.Options{}, err
	}

	reg := rdf.DefaultRegistry()
	if err := reg.Register(c.Datatypes...); err != nil {
		return builder.Options{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid custom datatype")
	}

	return builder.Options{
		Namespace: c.Namespace,
		Mapping:   mapping,
		Datatypes: reg,
		Logger:    log,
	}, nil
}

func (c *Config) mapping() (override.Mapping, error) {
	inline := override.Mapping(c.Mapping)
	if c.MappingFile == "" {
		return inline, nil
	}
	fromFile, err := override.LoadProperties(c.MappingFile)
	if err != nil {
		return nil, err
	}
	return fromFile.Merge(inline), nil
}
