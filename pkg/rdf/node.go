// Package rdf holds the symbol model shared by every csvgraph package: URI
// nodes, plain and typed literals, the datatype registry and IRI helpers.
//
// Nodes are small immutable values. Two nodes are the same symbol exactly
// when they compare equal with ==.
package rdf

import (
	"strconv"
	"strings"
)

// Kind distinguishes URI nodes from literal nodes.
type Kind uint8

const (
	// KindURI is an IRI reference.
	KindURI Kind = iota + 1
	// KindLiteral is a plain or typed literal.
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindLiteral:
		return "literal"
	default:
		return "invalid"
	}
}

// Node is an immutable symbol: either a URI or a literal with an optional
// datatype. The zero Node is invalid and never produced by the constructors.
type Node struct {
	kind     Kind
	text     string
	datatype string
}

// NewURI returns a URI node. The IRI is stored verbatim; callers validate
// with IsValidURI when the input is untrusted.
func NewURI(iri string) Node {
	return Node{kind: KindURI, text: iri}
}

// NewLiteral returns a plain literal (implicitly xsd:string).
func NewLiteral(lexical string) Node {
	return Node{kind: KindLiteral, text: lexical}
}

// NewTypedLiteral returns a literal tagged with datatype. The lexical form is
// not checked against the datatype.
func NewTypedLiteral(lexical, datatype string) Node {
	return Node{kind: KindLiteral, text: lexical, datatype: datatype}
}

// NewIntegerLiteral returns an xsd:integer literal for n.
func NewIntegerLiteral(n int) Node {
	return NewTypedLiteral(strconv.Itoa(n), XSDInteger)
}

func (n Node) Kind() Kind { return n.kind }

// IsValid reports whether n was built by one of the constructors.
func (n Node) IsValid() bool { return n.kind != 0 }

func (n Node) IsURI() bool { return n.kind == KindURI }

func (n Node) IsLiteral() bool { return n.kind == KindLiteral }

// URI returns the IRI of a URI node and "" for literals.
func (n Node) URI() string {
	if n.kind != KindURI {
		return ""
	}
	return n.text
}

// Lexical returns the lexical form of a literal and "" for URIs.
func (n Node) Lexical() string {
	if n.kind != KindLiteral {
		return ""
	}
	return n.text
}

// Datatype returns the explicit datatype IRI, or "" for plain literals and URIs.
func (n Node) Datatype() string { return n.datatype }

// IsPlain reports whether n is a literal without an explicit datatype.
func (n Node) IsPlain() bool { return n.kind == KindLiteral && n.datatype == "" }

// Equal reports whether n and other denote the same symbol.
func (n Node) Equal(other Node) bool { return n == other }

// Value decodes the lexical form of a literal into a Go value. Numeric and
// boolean XSD types decode to int32, int64, float64 or bool; anything else,
// including undecodable lexical forms, yields the lexical string. The second
// result is false for URI and invalid nodes.
func (n Node) Value() (any, bool) {
	if n.kind != KindLiteral {
		return nil, false
	}
	switch n.datatype {
	case XSDInt:
		if v, err := strconv.ParseInt(n.text, 10, 32); err == nil {
			return int32(v), true
		}
	case XSDInteger, XSDLong:
		if v, err := strconv.ParseInt(n.text, 10, 64); err == nil {
			return v, true
		}
	case XSDDouble, XSDFloat, XSDDecimal:
		if v, err := strconv.ParseFloat(n.text, 64); err == nil {
			return v, true
		}
	case XSDBoolean:
		switch n.text {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return n.text, true
}

// String renders n in N-Triples term syntax. It is meant for logs and test
// failure messages, not for serialization.
func (n Node) String() string {
	switch n.kind {
	case KindURI:
		return "<" + n.text + ">"
	case KindLiteral:
		var b strings.Builder
		b.WriteString(strconv.Quote(n.text))
		if n.datatype != "" {
			b.WriteString("^^<")
			b.WriteString(n.datatype)
			b.WriteString(">")
		}
		return b.String()
	default:
		return "<invalid>"
	}
}
