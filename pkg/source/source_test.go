package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/csvgraph/pkg/compression"
	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

func readAll(t *testing.T, r Reader) [][]string {
	t.Helper()
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func writeFile(t *testing.T, name, content string, alg compression.Algorithm) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := compression.NewWriter(alg, f)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestRecords(t *testing.T) {
	src := NewRecords("mem://people", [][]string{{"name"}, {"Ada"}})
	assert.Equal(t, "mem://people", src.ID())

	for i := 0; i < 2; i++ {
		r, err := src.Open()
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"name"}, {"Ada"}}, readAll(t, r))
		require.NoError(t, r.Close())
	}
}

func TestFileReadsVariableWidthRecords(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nAda,36,extra\nLin\n", compression.None)
	src := NewFile(path, CSVOptions{})
	assert.Equal(t, path, src.ID())
	assert.Equal(t, path, src.Path())

	r, err := src.Open()
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, [][]string{
		{"name", "age"},
		{"Ada", "36", "extra"},
		{"Lin"},
	}, readAll(t, r))
}

func TestFileStripsBOM(t *testing.T) {
	path := writeFile(t, "bom.csv", "\ufeffname,age\n\ufeffAda,1\n", compression.None)

	r, err := NewFile(path, CSVOptions{}).Open()
	require.NoError(t, err)
	defer r.Close()

	recs := readAll(t, r)
	assert.Equal(t, "name", recs[0][0])
	assert.Equal(t, "\ufeffAda", recs[1][0], "only the first field of the file is stripped")
}

func TestFileCompressed(t *testing.T) {
	content := "name,age\nAda,36\n"
	for _, tc := range []struct {
		name string
		alg  compression.Algorithm
	}{
		{"people.csv.gz", compression.Gzip},
		{"people.csv.zst", compression.Zstd},
		{"people.csv.lz4", compression.LZ4},
		{"people.csv.sz", compression.Snappy},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.name, content, tc.alg)

			r, err := NewFile(path, CSVOptions{Compression: compression.Auto}).Open()
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, [][]string{{"name", "age"}, {"Ada", "36"}}, readAll(t, r))
		})
	}
}

func TestFileExplicitCompressionOverridesExtension(t *testing.T) {
	path := writeFile(t, "people.dat", "a\n1\n", compression.Gzip)

	r, err := NewFile(path, CSVOptions{Compression: compression.Gzip}).Open()
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, readAll(t, r), 2)
}

func TestFileDelimiterAndComment(t *testing.T) {
	path := writeFile(t, "people.tsv", "# header follows\nname\tage\nAda\t36\n", compression.None)

	r, err := NewFile(path, CSVOptions{Delimiter: '\t', Comment: '#'}).Open()
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, [][]string{{"name", "age"}, {"Ada", "36"}}, readAll(t, r))
}

func TestFileMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "absent.csv"), CSVOptions{}).Open()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileMalformedRecord(t *testing.T) {
	path := writeFile(t, "bad.csv", "name\n\"unterminated\n", compression.None)

	r, err := NewFile(path, CSVOptions{}).Open()
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Read()
	require.NoError(t, err)
	_, err = r.Read()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestWithID(t *testing.T) {
	f := NewFile("people.csv", CSVOptions{})
	g := f.WithID("http://ex/people")
	assert.Equal(t, "people.csv", f.ID())
	assert.Equal(t, "http://ex/people", g.ID())
	assert.Equal(t, "people.csv", g.Path())
}

func TestNewCSVReaderRejectsBadOptions(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader(""), CSVOptions{Delimiter: '"'})
	assert.Error(t, err)
	_, err = NewCSVReader(strings.NewReader(""), CSVOptions{Delimiter: ';', Comment: ';'})
	assert.Error(t, err)
}

func TestParseDelimiter(t *testing.T) {
	for in, expected := range map[string]rune{"": 0, ",": ',', ";": ';', `\t`: '\t', "\t": '\t', "|": '|'} {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, got, in)
	}
	_, err := ParseDelimiter(",;")
	assert.Error(t, err)
	_, err = ParseDelimiter(`"`)
	assert.Error(t, err)
}
