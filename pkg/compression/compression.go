// Package compression lets csvgraph read and write compressed CSV sources
// transparently. Algorithms are picked explicitly or detected from the file
// extension.
//
// # Algorithm Selection
//
//	.gz, .gzip      Gzip (klauspost/compress/gzip)
//	.zst, .zstd     Zstd (klauspost/compress/zstd)
//	.lz4            LZ4 frames (pierrec/lz4)
//	.sz, .snappy    Snappy framed stream (klauspost/compress/snappy)
//	.s2             S2 stream (klauspost/compress/s2)
//
// # Basic Usage
//
//	alg := compression.Detect(path)
//	rc, err := compression.NewReader(alg, file)
//	defer rc.Close()
package compression

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// Auto detects the algorithm from the file extension
	Auto Algorithm = "auto"
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents the framed snappy stream format
	Snappy Algorithm = "snappy"
	// LZ4 represents lz4 frame compression
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// S2 represents s2 stream compression
	S2 Algorithm = "s2"
)

var extensions = map[string]Algorithm{
	".gz":     Gzip,
	".gzip":   Gzip,
	".zst":    Zstd,
	".zstd":   Zstd,
	".lz4":    LZ4,
	".sz":     Snappy,
	".snappy": Snappy,
	".s2":     S2,
}

// ParseAlgorithm converts a configuration string to an Algorithm.
// The empty string means Auto.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToLower(strings.TrimSpace(s))); alg {
	case "":
		return Auto, nil
	case Auto, None, Gzip, Snappy, LZ4, Zstd, S2:
		return alg, nil
	default:
		return "", fmt.Errorf("unknown compression algorithm %q", s)
	}
}

// Detect returns the algorithm implied by the extension of path, or None.
func Detect(path string) Algorithm {
	if alg, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return alg
	}
	return None
}

// Resolve replaces Auto with the algorithm detected from path.
func Resolve(alg Algorithm, path string) Algorithm {
	if alg == Auto || alg == "" {
		return Detect(path)
	}
	return alg
}

// NewReader wraps src with a decompressing reader. Closing the returned
// reader releases decoder resources but does not close src.
func NewReader(alg Algorithm, src io.Reader) (io.ReadCloser, error) {
	switch alg {
	case None, Auto, "":
		return io.NopCloser(src), nil
	case Gzip:
		r, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return r, nil
	case Zstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(src)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(src)), nil
	case S2:
		return io.NopCloser(s2.NewReader(src)), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", alg)
	}
}

// NewWriter wraps dst with a compressing writer. The caller must Close the
// returned writer to flush trailing frames; dst is not closed.
func NewWriter(alg Algorithm, dst io.Writer) (io.WriteCloser, error) {
	switch alg {
	case None, Auto, "":
		return nopWriteCloser{dst}, nil
	case Gzip:
		return gzip.NewWriter(dst), nil
	case Zstd:
		enc, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(dst), nil
	case Snappy:
		return snappy.NewBufferedWriter(dst), nil
	case S2:
		return s2.NewWriter(dst), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", alg)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
