package table

import (
	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

// cellStore is the part that differs between storage strategies.
type cellStore interface {
	set(row, col int, value rdf.Node)
	get(row, col int) (rdf.Node, bool)
	clear(row, col int)
}

// base keeps the ordered column and row registries shared by both
// strategies. maxRows and maxColumns of 0 mean unbounded.
type base struct {
	owner PropertyTable
	cells cellStore

	columns     []*column
	columnIndex map[rdf.Node]*column
	rows        []*row
	rowIndex    map[rdf.Node]*row

	maxRows    int
	maxColumns int
}

func newBase(cells cellStore, maxRows, maxColumns int) *base {
	return &base{
		cells:       cells,
		columnIndex: make(map[rdf.Node]*column, maxColumns),
		rowIndex:    make(map[rdf.Node]*row, maxRows),
		maxRows:     maxRows,
		maxColumns:  maxColumns,
	}
}

type column struct {
	b     *base
	key   rdf.Node
	index int
}

func (c *column) Key() rdf.Node        { return c.key }
func (c *column) Table() PropertyTable { return c.b.owner }
func (c *column) Values() []rdf.Node   { return c.b.ColumnValues(c) }

type row struct {
	b       *base
	subject rdf.Node
	index   int
}

func (r *row) Subject() rdf.Node    { return r.subject }
func (r *row) Table() PropertyTable { return r.b.owner }

func (r *row) SetValue(col Column, value rdf.Node) error {
	c, ok := r.b.own(col)
	if !ok {
		return errors.Wrap(ErrForeignColumn, errors.ErrorTypeData, "cannot set value").
			WithDetail("subject", r.subject.String())
	}
	if !value.IsValid() {
		r.b.cells.clear(r.index, c.index)
		return nil
	}
	r.b.cells.set(r.index, c.index, value)
	return nil
}

func (r *row) Value(col Column) (rdf.Node, bool) {
	c, ok := r.b.own(col)
	if !ok {
		return rdf.Node{}, false
	}
	return r.b.cells.get(r.index, c.index)
}

func (r *row) Columns() []Column {
	var out []Column
	for _, c := range r.b.columns {
		if _, ok := r.b.cells.get(r.index, c.index); ok {
			out = append(out, c)
		}
	}
	return out
}

// own returns col as a column of this table.
func (b *base) own(col Column) (*column, bool) {
	c, ok := col.(*column)
	if !ok || c == nil || c.b != b {
		return nil, false
	}
	return c, true
}

func (b *base) CreateColumn(key rdf.Node) (Column, error) {
	if !key.IsValid() {
		return nil, errors.Wrap(ErrInvalidSymbol, errors.ErrorTypeData, "cannot create column")
	}
	if _, exists := b.columnIndex[key]; exists {
		return nil, errors.Wrap(ErrDuplicateColumn, errors.ErrorTypeData, "cannot create column").
			WithDetail("key", key.String())
	}
	if b.maxColumns > 0 && len(b.columns) >= b.maxColumns {
		return nil, errors.Wrap(ErrCapacityExceeded, errors.ErrorTypeData, "cannot create column").
			WithDetail("key", key.String()).
			WithDetail("capacity", b.maxColumns)
	}

	c := &column{b: b, key: key, index: len(b.columns)}
	b.columns = append(b.columns, c)
	b.columnIndex[key] = c
	return c, nil
}

func (b *base) GetColumn(key rdf.Node) Column {
	if c, ok := b.columnIndex[key]; ok {
		return c
	}
	return nil
}

func (b *base) Columns() []Column {
	out := make([]Column, len(b.columns))
	for i, c := range b.columns {
		out[i] = c
	}
	return out
}

func (b *base) CreateRow(subject rdf.Node) (Row, error) {
	if !subject.IsValid() {
		return nil, errors.Wrap(ErrInvalidSymbol, errors.ErrorTypeData, "cannot create row")
	}
	if _, exists := b.rowIndex[subject]; exists {
		return nil, errors.Wrap(ErrDuplicateRow, errors.ErrorTypeData, "cannot create row").
			WithDetail("subject", subject.String())
	}
	if b.maxRows > 0 && len(b.rows) >= b.maxRows {
		return nil, errors.Wrap(ErrCapacityExceeded, errors.ErrorTypeData, "cannot create row").
			WithDetail("subject", subject.String()).
			WithDetail("capacity", b.maxRows)
	}

	r := &row{b: b, subject: subject, index: len(b.rows)}
	b.rows = append(b.rows, r)
	b.rowIndex[subject] = r
	return r, nil
}

func (b *base) GetRow(subject rdf.Node) Row {
	if r, ok := b.rowIndex[subject]; ok {
		return r
	}
	return nil
}

func (b *base) Rows() []Row {
	out := make([]Row, len(b.rows))
	for i, r := range b.rows {
		out[i] = r
	}
	return out
}

// Len returns the number of rows.
func (b *base) Len() int { return len(b.rows) }

func (b *base) ColumnValues(col Column) []rdf.Node {
	c, ok := b.own(col)
	if !ok {
		return nil
	}
	var values []rdf.Node
	for _, r := range b.rows {
		if v, ok := b.cells.get(r.index, c.index); ok {
			values = append(values, v)
		}
	}
	return values
}

func (b *base) MatchingRows(col Column, value rdf.Node) []Row {
	c, ok := b.own(col)
	if !ok {
		return nil
	}
	var out []Row
	for _, r := range b.rows {
		if v, ok := b.cells.get(r.index, c.index); ok && v == value {
			out = append(out, r)
		}
	}
	return out
}
