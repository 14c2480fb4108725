package builder

import (
	stderrors "errors"
	"io"
	"strings"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
	"github.com/ajitpratap0/csvgraph/pkg/source"
	"github.com/ajitpratap0/csvgraph/pkg/table"
)

// Strategy chooses how the storage for a conversion is allocated. Both
// strategies are filled by the same algorithm.
type Strategy interface {
	// Name is the configuration and metrics label of the strategy.
	Name() string
	// NewTable returns an empty table ready to be filled from src. A nil
	// table with a nil error means the source is known to be empty.
	NewTable(src source.Source) (table.PropertyTable, error)
}

const (
	// ArrayName selects the two-pass, fixed-capacity strategy.
	ArrayName = "array"
	// HashName selects the one-pass, growable strategy.
	HashName = "hashmap"
)

var (
	// Array pre-scans the source and allocates an ArrayTable sized to it.
	// It needs a source that can be opened twice.
	Array Strategy = arrayStrategy{}
	// Hash allocates a HashTable and needs no pre-scan, so it suits
	// streams that can only be read once.
	Hash Strategy = hashStrategy{}
)

// ParseStrategy returns the strategy named name. The empty string selects
// Hash.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HashName, "hash":
		return Hash, nil
	case ArrayName:
		return Array, nil
	default:
		return nil, errors.New(errors.ErrorTypeConfig, "unknown storage strategy").
			WithDetail("strategy", name)
	}
}

type hashStrategy struct{}

func (hashStrategy) Name() string { return HashName }

func (hashStrategy) NewTable(source.Source) (table.PropertyTable, error) {
	return table.NewHashTable(), nil
}

type arrayStrategy struct{}

func (arrayStrategy) Name() string { return ArrayName }

// NewTable sizes the table to the record count of src, header included, and
// to one more column than the first record has fields so the row-index
// column fits.
func (arrayStrategy) NewTable(src source.Source) (table.PropertyTable, error) {
	rows, cols, err := PreScan(src)
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return nil, nil
	}
	t, err := table.NewArrayTable(rows, cols+1)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// PreScan reads src once and returns the number of records, header
// included, and the field count of the first record.
func PreScan(src source.Source) (rows, cols int, err error) {
	r, err := src.Open()
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	for {
		rec, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			return rows, cols, nil
		}
		if err != nil {
			return 0, 0, errors.Wrap(err, errors.ErrorTypeFile, "failed to pre-scan source").
				WithDetail("source", src.ID())
		}
		if rows == 0 {
			cols = len(rec)
		}
		rows++
	}
}
