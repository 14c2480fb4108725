package override

import (
	"github.com/magiconair/properties"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

// LoadProperties reads a mapping from a Java-style .properties file, one
// "ordinal = identifier>datatype" entry per line. ${...} expansion is off so
// values are taken literally.
func LoadProperties(path string) (Mapping, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to load mapping file").
			WithDetail("path", path)
	}
	return Mapping(p.Map()), nil
}

// ParseProperties reads a mapping from .properties text.
func ParseProperties(text string) (Mapping, error) {
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse mapping")
	}
	return Mapping(p.Map()), nil
}
