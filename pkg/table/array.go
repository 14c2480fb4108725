package table

import (
	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// ArrayTable is a property table backed by one contiguous cell array sized at
// construction. Creating more rows or columns than its capacity fails with
// ErrCapacityExceeded.
type ArrayTable struct {
	*base
}

// NewArrayTable allocates a table for at most rows rows and columns columns.
func NewArrayTable(rows, columns int) (*ArrayTable, error) {
	if rows <= 0 || columns <= 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "array table capacity must be positive").
			WithDetail("rows", rows).
			WithDetail("columns", columns)
	}
	cells := &arrayCells{
		columns: columns,
		values:  make([]rdf.Node, rows*columns),
	}
	t := &ArrayTable{base: newBase(cells, rows, columns)}
	t.owner = t
	return t, nil
}

// Capacity returns the row and column capacity.
func (t *ArrayTable) Capacity() (rows, columns int) {
	return t.maxRows, t.maxColumns
}

// arrayCells stores cell (r, c) at values[r*columns+c]; the zero Node marks
// an absent cell.
type arrayCells struct {
	columns int
	values  []rdf.Node
}

func (a *arrayCells) set(row, col int, value rdf.Node) {
	a.values[row*a.columns+col] = value
}

func (a *arrayCells) get(row, col int) (rdf.Node, bool) {
	v := a.values[row*a.columns+col]
	return v, v.IsValid()
}

func (a *arrayCells) clear(row, col int) {
	a.values[row*a.columns+col] = rdf.Node{}
}

var _ PropertyTable = (*ArrayTable)(nil)
