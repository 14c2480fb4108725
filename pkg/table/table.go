// Package table implements property tables: tables whose columns are keyed by
// predicate symbols and whose rows are keyed by subject symbols, so that every
// cell reads as one (subject, predicate, value) statement.
//
// Two storage strategies share one contract:
//   - HashTable grows on demand and needs no sizing up front.
//   - ArrayTable is allocated once for a fixed number of rows and columns,
//     typically measured by a pre-scan of the source.
//
// Tables are built by a single goroutine. Once filled they may be read
// concurrently; no method takes a lock.
package table

import (
	stderrors "errors"

	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

var (
	// ErrDuplicateColumn is returned when a column key is already present.
	ErrDuplicateColumn = stderrors.New("column already exists")
	// ErrDuplicateRow is returned when a row subject is already present.
	ErrDuplicateRow = stderrors.New("row already exists")
	// ErrCapacityExceeded is returned when a fixed-size table is full.
	ErrCapacityExceeded = stderrors.New("table capacity exceeded")
	// ErrForeignColumn is returned when a column from another table is used.
	ErrForeignColumn = stderrors.New("column belongs to another table")
	// ErrInvalidSymbol is returned for zero-value keys and subjects.
	ErrInvalidSymbol = stderrors.New("invalid symbol")
)

// PropertyTable is the storage contract the builder fills. Implementations
// outside this package are welcome; HashTable and ArrayTable are the two
// provided here.
type PropertyTable interface {
	// CreateColumn appends a column keyed by key.
	CreateColumn(key rdf.Node) (Column, error)
	// GetColumn returns the column keyed by key, or nil.
	GetColumn(key rdf.Node) Column
	// Columns returns all columns in creation order.
	Columns() []Column

	// CreateRow appends a row keyed by subject.
	CreateRow(subject rdf.Node) (Row, error)
	// GetRow returns the row keyed by subject, or nil.
	GetRow(subject rdf.Node) Row
	// Rows returns all rows in creation order.
	Rows() []Row
	// Len returns the number of rows.
	Len() int

	// ColumnValues returns the present values of col in row order. Absent
	// cells are omitted, not represented by placeholders.
	ColumnValues(col Column) []rdf.Node
	// MatchingRows returns the rows whose cell in col equals value.
	MatchingRows(col Column, value rdf.Node) []Row
}

// Column is one predicate of a table.
type Column interface {
	Key() rdf.Node
	Table() PropertyTable
	// Values returns the present values of the column in row order.
	Values() []rdf.Node
}

// Row is one subject of a table.
type Row interface {
	Subject() rdf.Node
	Table() PropertyTable
	// SetValue stores value in the cell at (row, col). Setting the zero Node
	// clears the cell.
	SetValue(col Column, value rdf.Node) error
	// Value returns the cell at (row, col) and whether it is present.
	Value(col Column) (rdf.Node, bool)
	// Columns returns the columns holding a value in this row, in column order.
	Columns() []Column
}
