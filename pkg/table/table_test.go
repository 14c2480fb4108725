package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

var (
	name = rdf.NewURI("http://ex/#name")
	age  = rdf.NewURI("http://ex/#age")
	s1   = rdf.NewURI("http://ex/data.csv#_1")
	s2   = rdf.NewURI("http://ex/data.csv#_2")
)

// strategies runs f against both implementations.
func strategies(t *testing.T, f func(t *testing.T, tbl PropertyTable)) {
	t.Run("hashmap", func(t *testing.T) {
		f(t, NewHashTable())
	})
	t.Run("array", func(t *testing.T) {
		tbl, err := NewArrayTable(4, 4)
		require.NoError(t, err)
		f(t, tbl)
	})
}

func TestCreateAndGetColumns(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		c1, err := tbl.CreateColumn(name)
		require.NoError(t, err)
		c2, err := tbl.CreateColumn(age)
		require.NoError(t, err)

		assert.Equal(t, name, c1.Key())
		assert.Same(t, c1, tbl.GetColumn(name))
		assert.Same(t, c2, tbl.GetColumn(age))
		assert.Nil(t, tbl.GetColumn(rdf.NewURI("http://ex/#missing")))
		assert.Equal(t, []Column{c1, c2}, tbl.Columns())
		assert.Equal(t, tbl, c1.Table())
	})
}

func TestDuplicateKeys(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		_, err := tbl.CreateColumn(name)
		require.NoError(t, err)
		_, err = tbl.CreateColumn(name)
		require.ErrorIs(t, err, ErrDuplicateColumn)
		assert.True(t, errors.IsType(err, errors.ErrorTypeData))

		_, err = tbl.CreateRow(s1)
		require.NoError(t, err)
		_, err = tbl.CreateRow(s1)
		require.ErrorIs(t, err, ErrDuplicateRow)

		_, err = tbl.CreateColumn(rdf.Node{})
		require.ErrorIs(t, err, ErrInvalidSymbol)
		_, err = tbl.CreateRow(rdf.Node{})
		require.ErrorIs(t, err, ErrInvalidSymbol)
	})
}

func TestSparseCells(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		cName, _ := tbl.CreateColumn(name)
		cAge, _ := tbl.CreateColumn(age)
		r1, _ := tbl.CreateRow(s1)
		r2, _ := tbl.CreateRow(s2)

		require.NoError(t, r1.SetValue(cName, rdf.NewLiteral("Ada")))
		require.NoError(t, r1.SetValue(cAge, rdf.NewTypedLiteral("36", rdf.XSDInt)))
		require.NoError(t, r2.SetValue(cName, rdf.NewLiteral("Lin")))

		assert.Equal(t, []rdf.Node{rdf.NewLiteral("Ada"), rdf.NewLiteral("Lin")}, tbl.ColumnValues(cName))
		assert.Equal(t, []rdf.Node{rdf.NewTypedLiteral("36", rdf.XSDInt)}, cAge.Values())

		_, ok := r2.Value(cAge)
		assert.False(t, ok)
		assert.Equal(t, []Column{cName}, r2.Columns())
		assert.Equal(t, []Column{cName, cAge}, r1.Columns())

		require.NoError(t, r1.SetValue(cAge, rdf.Node{}))
		assert.Empty(t, tbl.ColumnValues(cAge))
	})
}

func TestRowsLookup(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		assert.Zero(t, tbl.Len())
		r1, _ := tbl.CreateRow(s1)
		r2, _ := tbl.CreateRow(s2)
		assert.Equal(t, 2, tbl.Len())

		assert.Equal(t, []Row{r1, r2}, tbl.Rows())
		assert.Same(t, r2, tbl.GetRow(s2))
		assert.Nil(t, tbl.GetRow(rdf.NewURI("http://ex/data.csv#_9")))
		assert.Equal(t, s1, r1.Subject())
		assert.Equal(t, tbl, r1.Table())
	})
}

func TestMatchingRows(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		c, _ := tbl.CreateColumn(age)
		r1, _ := tbl.CreateRow(s1)
		r2, _ := tbl.CreateRow(s2)
		v := rdf.NewTypedLiteral("36", rdf.XSDInt)
		require.NoError(t, r1.SetValue(c, v))
		require.NoError(t, r2.SetValue(c, rdf.NewTypedLiteral("29", rdf.XSDInt)))

		assert.Equal(t, []Row{r1}, tbl.MatchingRows(c, v))
		assert.Empty(t, tbl.MatchingRows(c, rdf.NewLiteral("36")))
	})
}

func TestForeignColumn(t *testing.T) {
	a := NewHashTable()
	b := NewHashTable()
	ca, _ := a.CreateColumn(name)
	rb, _ := b.CreateRow(s1)

	err := rb.SetValue(ca, rdf.NewLiteral("x"))
	require.ErrorIs(t, err, ErrForeignColumn)

	_, ok := rb.Value(ca)
	assert.False(t, ok)
	assert.Nil(t, b.ColumnValues(ca))
	assert.Nil(t, b.MatchingRows(ca, rdf.NewLiteral("x")))

	err = rb.SetValue(nil, rdf.NewLiteral("x"))
	require.ErrorIs(t, err, ErrForeignColumn)
}

func TestArrayCapacity(t *testing.T) {
	tbl, err := NewArrayTable(1, 2)
	require.NoError(t, err)

	rows, cols := tbl.Capacity()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)

	_, err = tbl.CreateColumn(name)
	require.NoError(t, err)
	_, err = tbl.CreateColumn(age)
	require.NoError(t, err)
	_, err = tbl.CreateColumn(rdf.NewURI("http://ex/#third"))
	require.ErrorIs(t, err, ErrCapacityExceeded)

	_, err = tbl.CreateRow(s1)
	require.NoError(t, err)
	_, err = tbl.CreateRow(s2)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, tbl.Len())
}

func TestNewArrayTableRejectsEmptyCapacity(t *testing.T) {
	_, err := NewArrayTable(0, 3)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = NewArrayTable(3, 0)
	require.Error(t, err)
}

func TestTriples(t *testing.T) {
	strategies(t, func(t *testing.T, tbl PropertyTable) {
		cName, _ := tbl.CreateColumn(name)
		cAge, _ := tbl.CreateColumn(age)
		r1, _ := tbl.CreateRow(s1)
		r2, _ := tbl.CreateRow(s2)
		ada := rdf.NewLiteral("Ada")
		lin := rdf.NewLiteral("Lin")
		thirtySix := rdf.NewTypedLiteral("36", rdf.XSDInt)
		require.NoError(t, r1.SetValue(cName, ada))
		require.NoError(t, r1.SetValue(cAge, thirtySix))
		require.NoError(t, r2.SetValue(cName, lin))

		assert.Equal(t, []Triple{
			{s1, name, ada},
			{s1, age, thirtySix},
			{s2, name, lin},
		}, Triples(tbl))

		assert.Equal(t, []Triple{{s1, name, ada}, {s2, name, lin}}, ColumnTriples(tbl, cName))
		assert.Nil(t, ColumnTriples(tbl, nil))

		assert.Equal(t, []Triple{{s2, name, lin}}, Find(tbl, s2, rdf.Node{}, rdf.Node{}))
		assert.Equal(t, []Triple{{s1, age, thirtySix}}, Find(tbl, rdf.Node{}, age, rdf.Node{}))
		assert.Equal(t, []Triple{{s1, name, ada}}, Find(tbl, rdf.Node{}, rdf.Node{}, ada))
		assert.Empty(t, Find(tbl, rdf.NewURI("http://ex/none"), rdf.Node{}, rdf.Node{}))

		assert.Equal(t, `<http://ex/data.csv#_1> <http://ex/#name> "Ada" .`, Triple{s1, name, ada}.String())
	})
}
