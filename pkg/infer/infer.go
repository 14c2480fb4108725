// Package infer turns raw CSV cell text into typed literals.
//
// With an explicit column datatype the text is tagged verbatim. Without one
// an ordered chain of parsers is tried: 32-bit integer, then finite double,
// then the literal "false" (case-insensitive). The first success wins and
// anything left over becomes a plain literal.
//
// "true" is deliberately not part of the chain: it stays a plain literal.
// Downstream consumers rely on that contract, so it must not be "fixed" here.
package infer

import (
	"math"
	"strconv"
	"strings"

	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// Kind classifies an inference result.
type Kind string

const (
	KindInt     Kind = "int"
	KindDouble  Kind = "double"
	KindBoolean Kind = "boolean"
	KindString  Kind = "string"
	// KindTyped is a literal tagged with an explicit column datatype.
	KindTyped Kind = "typed"
)

// parser is one step of the inference chain.
type parser func(value string) (rdf.Node, bool)

// chain is tried in order; the order is part of the contract.
var chain = []parser{parseInt, parseDouble, parseFalse}

// Infer converts a trimmed, non-empty cell value into a node. datatype is the
// explicit column datatype or "". reg decides which datatypes are known; an
// unknown datatype falls through to a plain literal.
func Infer(value, datatype string, reg *rdf.Registry) rdf.Node {
	n, _ := InferKind(value, datatype, reg)
	return n
}

// InferKind is Infer that also reports which rule produced the node.
func InferKind(value, datatype string, reg *rdf.Registry) (node rdf.Node, kind Kind) {
	defer func() {
		if r := recover(); r != nil {
			node, kind = rdf.NewLiteral(value), KindString
		}
	}()

	if datatype != "" {
		if reg.Lookup(datatype) {
			return rdf.NewTypedLiteral(value, datatype), KindTyped
		}
		return rdf.NewLiteral(value), KindString
	}

	for _, p := range chain {
		if n, ok := p(value); ok {
			return n, kindOf(n)
		}
	}
	return rdf.NewLiteral(value), KindString
}

func kindOf(n rdf.Node) Kind {
	switch n.Datatype() {
	case rdf.XSDInt:
		return KindInt
	case rdf.XSDDouble:
		return KindDouble
	case rdf.XSDBoolean:
		return KindBoolean
	default:
		return KindString
	}
}

func parseInt(value string) (rdf.Node, bool) {
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return rdf.Node{}, false
	}
	return rdf.NewTypedLiteral(strconv.FormatInt(n, 10), rdf.XSDInt), true
}

func parseDouble(value string) (rdf.Node, bool) {
	// ParseFloat also accepts "inf" and "nan" spellings and underscore digit
	// separators; those stay strings.
	if strings.ContainsRune(value, '_') {
		return rdf.Node{}, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return rdf.Node{}, false
	}
	return rdf.NewTypedLiteral(strconv.FormatFloat(f, 'g', -1, 64), rdf.XSDDouble), true
}

func parseFalse(value string) (rdf.Node, bool) {
	if !strings.EqualFold(value, "false") {
		return rdf.Node{}, false
	}
	return rdf.NewTypedLiteral("false", rdf.XSDBoolean), true
}
