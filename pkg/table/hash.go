package table

import "github.com/ajitpratap0/csvgraph/pkg/rdf"

// HashTable is a property table that grows as rows and columns are created.
type HashTable struct {
	*base
}

// NewHashTable creates an empty, unbounded table.
func NewHashTable() *HashTable {
	t := &HashTable{base: newBase(make(hashCells), 0, 0)}
	t.owner = t
	return t
}

type cellKey struct {
	row, col int
}

type hashCells map[cellKey]rdf.Node

func (h hashCells) set(row, col int, value rdf.Node) {
	h[cellKey{row, col}] = value
}

func (h hashCells) get(row, col int) (rdf.Node, bool) {
	v, ok := h[cellKey{row, col}]
	return v, ok
}

func (h hashCells) clear(row, col int) {
	delete(h, cellKey{row, col})
}

var _ PropertyTable = (*HashTable)(nil)
