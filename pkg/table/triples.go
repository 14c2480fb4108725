package table

import "github.com/ajitpratap0/csvgraph/pkg/rdf"

// Triple is one statement of the graph view of a table.
type Triple struct {
	Subject   rdf.Node
	Predicate rdf.Node
	Object    rdf.Node
}

func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Triples returns one triple per present cell, rows in order and columns in
// order within each row.
func Triples(t PropertyTable) []Triple {
	cols := t.Columns()
	var out []Triple
	for _, r := range t.Rows() {
		for _, c := range cols {
			if v, ok := r.Value(c); ok {
				out = append(out, Triple{Subject: r.Subject(), Predicate: c.Key(), Object: v})
			}
		}
	}
	return out
}

// ColumnTriples returns the triples of a single column in row order.
func ColumnTriples(t PropertyTable, col Column) []Triple {
	if col == nil {
		return nil
	}
	var out []Triple
	for _, r := range t.Rows() {
		if v, ok := r.Value(col); ok {
			out = append(out, Triple{Subject: r.Subject(), Predicate: col.Key(), Object: v})
		}
	}
	return out
}

// Find returns the triples matching a pattern. Zero-value nodes are
// wildcards.
func Find(t PropertyTable, subject, predicate, object rdf.Node) []Triple {
	rows := t.Rows()
	if subject.IsValid() {
		r := t.GetRow(subject)
		if r == nil {
			return nil
		}
		rows = []Row{r}
	}
	cols := t.Columns()
	if predicate.IsValid() {
		c := t.GetColumn(predicate)
		if c == nil {
			return nil
		}
		cols = []Column{c}
	}

	var out []Triple
	for _, r := range rows {
		for _, c := range cols {
			v, ok := r.Value(c)
			if !ok || (object.IsValid() && v != object) {
				continue
			}
			out = append(out, Triple{Subject: r.Subject(), Predicate: c.Key(), Object: v})
		}
	}
	return out
}
