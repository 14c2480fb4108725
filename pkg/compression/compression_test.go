package compression

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripStreams(t *testing.T) {
	payload := []byte("name,age\nAda,36\nLin,29\n")

	for _, alg := range []Algorithm{None, Gzip, Zstd, LZ4, Snappy, S2} {
		t.Run(string(alg), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(alg, &buf)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(alg, &buf)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := map[string]Algorithm{
		"data.csv":       None,
		"data.csv.gz":    Gzip,
		"DATA.CSV.GZ":    Gzip,
		"data.csv.zst":   Zstd,
		"data.csv.lz4":   LZ4,
		"data.csv.sz":    Snappy,
		"data.csv.s2":    S2,
		"data.csv.bz2":   None,
		"/tmp/x/data.gz": Gzip,
	}
	for path, expected := range tests {
		assert.Equal(t, expected, Detect(path), path)
	}
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, Auto, alg)

	alg, err = ParseAlgorithm(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, Zstd, alg)

	_, err = ParseAlgorithm("brotli")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Gzip, Resolve(Auto, "a.csv.gz"))
	assert.Equal(t, None, Resolve(None, "a.csv.gz"))
	assert.Equal(t, LZ4, Resolve(LZ4, "a.csv"))
}

func TestNewReaderRejectsCorruptGzip(t *testing.T) {
	_, err := NewReader(Gzip, bytes.NewReader([]byte("plain text")))
	assert.Error(t, err)
}
