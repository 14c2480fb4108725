// Package source supplies the row streams a property table is built from.
//
// A Source is re-openable: the array-backed table strategy reads it twice,
// once to count rows and columns and once to fill. A Reader yields one record
// of raw fields per call and io.EOF at the end.
package source

import (
	"io"
)

// Reader is a forward-only stream of records.
type Reader interface {
	// Read returns the next record, or io.EOF when the stream is exhausted.
	Read() ([]string, error)
	// Close releases the underlying resources.
	Close() error
}

// Source opens independent readers over the same input.
type Source interface {
	// ID identifies the source; it seeds namespaces and row subjects.
	ID() string
	// Open returns a new reader positioned at the first record.
	Open() (Reader, error)
}

// Records is an in-memory source.
type Records struct {
	id      string
	records [][]string
}

// NewRecords returns a source over records identified by id.
func NewRecords(id string, records [][]string) *Records {
	return &Records{id: id, records: records}
}

func (s *Records) ID() string { return s.id }

func (s *Records) Open() (Reader, error) {
	return &sliceReader{records: s.records}, nil
}

type sliceReader struct {
	records [][]string
	pos     int
}

func (r *sliceReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *sliceReader) Close() error { return nil }
