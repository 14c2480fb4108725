package source

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ajitpratap0/csvgraph/pkg/compression"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

const bom = "\ufeff"

// CSVOptions configures the tokenizer.
type CSVOptions struct {
	// Delimiter separates fields; zero means ','.
	Delimiter rune
	// Comment starts a comment line when non-zero.
	Comment rune
	// LazyQuotes tolerates quotes inside unquoted fields.
	LazyQuotes bool
	// Compression selects the decompressor; Auto detects it from the path.
	Compression compression.Algorithm
}

// File is a CSV file on disk, optionally compressed.
type File struct {
	path string
	id   string
	opts CSVOptions
}

// NewFile returns a source reading path. The source identifier is the path
// itself unless overridden with WithID.
func NewFile(path string, opts CSVOptions) *File {
	return &File{path: path, id: path, opts: opts}
}

// WithID returns a copy of f with a different source identifier.
func (f *File) WithID(id string) *File {
	c := *f
	c.id = id
	return &c
}

func (f *File) ID() string { return f.id }

// Path returns the file path.
func (f *File) Path() string { return f.path }

func (f *File) Open() (Reader, error) {
	file, err := os.Open(f.path) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open source").
			WithDetail("path", f.path)
	}

	alg := compression.Resolve(f.opts.Compression, f.path)
	body, err := compression.NewReader(alg, file)
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to decompress source").
			WithDetail("path", f.path).
			WithDetail("compression", string(alg))
	}

	r, err := NewCSVReader(body, f.opts)
	if err != nil {
		_ = body.Close()
		_ = file.Close()
		return nil, err
	}
	r.closers = []io.Closer{body, file}
	r.name = f.path
	return r, nil
}

// CSVReader adapts encoding/csv to Reader. Records may have varying field
// counts and a leading UTF-8 byte order mark is dropped.
type CSVReader struct {
	csv     *csv.Reader
	closers []io.Closer
	name    string
	first   bool
}

// NewCSVReader tokenizes r.
func NewCSVReader(r io.Reader, opts CSVOptions) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = opts.LazyQuotes
	if opts.Delimiter != 0 {
		if !validDelimiter(opts.Delimiter) {
			return nil, errors.New(errors.ErrorTypeConfig, "invalid CSV delimiter").
				WithDetail("delimiter", string(opts.Delimiter))
		}
		cr.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		if opts.Comment == cr.Comma || !validDelimiter(opts.Comment) {
			return nil, errors.New(errors.ErrorTypeConfig, "invalid CSV comment character").
				WithDetail("comment", string(opts.Comment))
		}
		cr.Comment = opts.Comment
	}
	return &CSVReader{csv: cr, first: true}, nil
}

func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && r != 0
}

func (r *CSVReader) Read() ([]string, error) {
	rec, err := r.csv.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		wrapped := errors.Wrap(err, errors.ErrorTypeFile, "failed to read CSV record").
			WithDetail("source", r.name)
		var pe *csv.ParseError
		if stderrors.As(err, &pe) {
			wrapped = wrapped.WithDetail("line", pe.Line)
		}
		return nil, wrapped
	}
	if r.first {
		r.first = false
		if len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], bom)
		}
	}
	return rec, nil
}

// Close closes the decompressor and the file, in that order.
func (r *CSVReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// ParseDelimiter turns a delimiter string from configuration into a rune.
// The empty string yields zero and `\t` is accepted for tab.
func ParseDelimiter(delim string) (rune, error) {
	if delim == "" {
		return 0, nil
	}
	if delim == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(delim)
	if size != len(delim) || !validDelimiter(r) {
		return 0, errors.New(errors.ErrorTypeConfig, "delimiter must be a single character").
			WithDetail("value", delim)
	}
	return r, nil
}
