package rdf

import "sync"

// XSD and RDF namespace IRIs.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Built-in datatype IRIs.
const (
	XSDString             = XSDNamespace + "string"
	XSDBoolean            = XSDNamespace + "boolean"
	XSDDecimal            = XSDNamespace + "decimal"
	XSDInteger            = XSDNamespace + "integer"
	XSDInt                = XSDNamespace + "int"
	XSDLong               = XSDNamespace + "long"
	XSDShort              = XSDNamespace + "short"
	XSDByte               = XSDNamespace + "byte"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDPositiveInteger    = XSDNamespace + "positiveInteger"
	XSDNonPositiveInteger = XSDNamespace + "nonPositiveInteger"
	XSDNegativeInteger    = XSDNamespace + "negativeInteger"
	XSDUnsignedLong       = XSDNamespace + "unsignedLong"
	XSDUnsignedInt        = XSDNamespace + "unsignedInt"
	XSDUnsignedShort      = XSDNamespace + "unsignedShort"
	XSDUnsignedByte       = XSDNamespace + "unsignedByte"
	XSDFloat              = XSDNamespace + "float"
	XSDDouble             = XSDNamespace + "double"
	XSDDate               = XSDNamespace + "date"
	XSDDateTime           = XSDNamespace + "dateTime"
	XSDDateTimeStamp      = XSDNamespace + "dateTimeStamp"
	XSDTime               = XSDNamespace + "time"
	XSDDuration           = XSDNamespace + "duration"
	XSDGYear              = XSDNamespace + "gYear"
	XSDGYearMonth         = XSDNamespace + "gYearMonth"
	XSDGMonth             = XSDNamespace + "gMonth"
	XSDGMonthDay          = XSDNamespace + "gMonthDay"
	XSDGDay               = XSDNamespace + "gDay"
	XSDAnyURI             = XSDNamespace + "anyURI"
	XSDHexBinary          = XSDNamespace + "hexBinary"
	XSDBase64Binary       = XSDNamespace + "base64Binary"
	XSDLanguage           = XSDNamespace + "language"
	XSDNormalizedString   = XSDNamespace + "normalizedString"
	XSDToken              = XSDNamespace + "token"

	RDFLangString = RDFNamespace + "langString"
	RDFXMLLiteral = RDFNamespace + "XMLLiteral"
	RDFHTML       = RDFNamespace + "HTML"
	RDFJSON       = RDFNamespace + "JSON"
)

var builtinDatatypes = []string{
	XSDString, XSDBoolean, XSDDecimal, XSDInteger, XSDInt, XSDLong, XSDShort, XSDByte,
	XSDNonNegativeInteger, XSDPositiveInteger, XSDNonPositiveInteger, XSDNegativeInteger,
	XSDUnsignedLong, XSDUnsignedInt, XSDUnsignedShort, XSDUnsignedByte,
	XSDFloat, XSDDouble, XSDDate, XSDDateTime, XSDDateTimeStamp, XSDTime, XSDDuration,
	XSDGYear, XSDGYearMonth, XSDGMonth, XSDGMonthDay, XSDGDay,
	XSDAnyURI, XSDHexBinary, XSDBase64Binary, XSDLanguage, XSDNormalizedString, XSDToken,
	RDFLangString, RDFXMLLiteral, RDFHTML, RDFJSON,
}

// Registry is the set of datatype IRIs a conversion recognises. It is safe
// for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	known map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{known: make(map[string]struct{})}
}

// DefaultRegistry returns a registry preloaded with the XSD and RDF built-ins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, dt := range builtinDatatypes {
		r.known[dt] = struct{}{}
	}
	return r
}

// Register adds custom datatype IRIs. Invalid IRIs are rejected with the
// first validation error; earlier valid entries stay registered.
func (r *Registry) Register(iris ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, iri := range iris {
		if err := IsValidURI(iri); err != nil {
			return err
		}
		r.known[iri] = struct{}{}
	}
	return nil
}

// Lookup reports whether iri names a known datatype. A nil registry knows
// nothing.
func (r *Registry) Lookup(iri string) bool {
	if r == nil || iri == "" {
		return false
	}
	r.mu.RLock()
	_, ok := r.known[iri]
	r.mu.RUnlock()
	return ok
}

// Len returns the number of registered datatypes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.known)
}
