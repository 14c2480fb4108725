// Package override resolves per-column configuration entries of the form
// "identifier>datatype" into a validated column identifier and datatype.
//
// Malformed parts never fail a conversion. They are logged, counted, and the
// column falls back to its minted identifier and to type inference.
package override

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/csvgraph/pkg/logger"
	"github.com/ajitpratap0/csvgraph/pkg/metrics"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// Separator splits the identifier part from the datatype part.
const Separator = ">"

// Mapping holds raw override entries keyed by 1-based column ordinal.
type Mapping map[string]string

// Lookup returns the raw entry for a 1-based ordinal.
func (m Mapping) Lookup(ordinal int) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[strconv.Itoa(ordinal)]
	return v, ok
}

// Merge returns a new mapping with the entries of m overlaid by other.
func (m Mapping) Merge(other Mapping) Mapping {
	out := make(Mapping, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Override is the validated result for one column. Empty fields mean "use
// the default".
type Override struct {
	Identifier string
	Datatype   string
}

// Key returns the override identifier, or fallback when there is none.
func (o Override) Key(fallback string) string {
	if o.Identifier != "" {
		return o.Identifier
	}
	return fallback
}

// Resolver validates mapping entries. A Resolver is read-only after
// construction and may be shared.
type Resolver struct {
	mapping Mapping
	logger  *zap.Logger
}

// NewResolver creates a resolver over mapping. A nil mapping resolves every
// column to defaults.
func NewResolver(mapping Mapping, log *zap.Logger) *Resolver {
	return &Resolver{
		mapping: mapping,
		logger:  logger.OrDefault(log),
	}
}

// Resolve returns the override for the 1-based column ordinal.
func (r *Resolver) Resolve(ordinal int) Override {
	raw, ok := r.mapping.Lookup(ordinal)
	if !ok {
		return Override{}
	}
	return r.parse(ordinal, raw)
}

func (r *Resolver) parse(ordinal int, raw string) Override {
	var o Override
	idPart, dtPart, hasDatatype := strings.Cut(raw, Separator)

	if id := strings.TrimSpace(idPart); id != "" {
		if err := rdf.IsValidURI(id); err != nil {
			r.reject(ordinal, "identifier", id, err)
		} else {
			o.Identifier = id
		}
	}

	if hasDatatype {
		if dt := strings.TrimSpace(dtPart); dt != "" {
			if err := rdf.IsValidURI(dt); err != nil {
				r.reject(ordinal, "datatype", dt, err)
			} else {
				o.Datatype = dt
			}
		}
	}
	return o
}

func (r *Resolver) reject(ordinal int, field, value string, err error) {
	metrics.OverridesRejected.WithLabelValues(field).Inc()
	r.logger.Warn("ignoring invalid column override",
		zap.Int("column", ordinal),
		zap.String("field", field),
		zap.String("value", value),
		zap.Error(err),
	)
}
