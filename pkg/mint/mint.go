// Package mint derives the stable symbols of a property table: column keys
// from header text, row subjects from ordinals, and the reserved row-index
// column key shared by every table.
//
// All functions are pure. Given the same inputs and working directory they
// always return the same strings.
package mint

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// RowURI is the predicate of the reserved row-index column.
const RowURI = "http://w3c/future-csv-vocab/row"

// RowKey is the reserved row-index column key. It does not depend on the
// source, so every table shares it.
var RowKey = rdf.NewURI(RowURI)

// ColumnKey returns namespace#safeLocalName(header), with namespace resolved
// to an absolute IRI. Callers pass the source identifier as namespace when no
// explicit namespace is configured.
func ColumnKey(namespace, header string) string {
	return rdf.ResolveIRI(namespace) + "#" + SafeLocalName(header)
}

// RowSubject returns the subject IRI for the 1-based data row ordinal of the
// given source. Distinct (ordinal, source) pairs give distinct subjects.
func RowSubject(ordinal int, source string) string {
	return rdf.ResolveIRI(source) + "#_" + strconv.Itoa(ordinal)
}

// SafeLocalName trims header and percent-encodes every byte outside
// A-Z a-z 0-9 - _ . ! ~ * ' ( ). The result is a valid URI fragment and
// distinct trimmed headers map to distinct names.
func SafeLocalName(header string) string {
	header = strings.TrimSpace(header)
	var b strings.Builder
	b.Grow(len(header))
	for i := 0; i < len(header); i++ {
		c := header[i]
		if isSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func isSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
