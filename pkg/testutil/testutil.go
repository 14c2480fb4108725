// Package testutil provides testing utilities for csvgraph
package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajitpratap0/csvgraph/pkg/compression"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ObservedLogger returns a logger whose entries at or above level are
// captured for assertions.
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// WriteCSV writes records to dir/name and returns the path. The file is
// compressed according to its extension.
func WriteCSV(t *testing.T, dir, name string, records [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := compression.NewWriter(compression.Detect(path), f)
	require.NoError(t, err)

	cw := csv.NewWriter(w)
	require.NoError(t, cw.WriteAll(records))
	require.NoError(t, w.Close())
	return path
}

// CreateTestData creates numFiles CSV files of recordsPerFile data rows each
// with an id, name, score and active column.
func CreateTestData(t *testing.T, dir string, numFiles int, recordsPerFile int) []string {
	t.Helper()

	var files []string
	for i := 0; i < numFiles; i++ {
		records := [][]string{{"id", "name", "score", "active"}}
		for j := 0; j < recordsPerFile; j++ {
			records = append(records, []string{
				fmt.Sprintf("%d", i*recordsPerFile+j),
				fmt.Sprintf("Record_%d_%d", i, j),
				fmt.Sprintf("%.2f", float64(j)*1.25),
				fmt.Sprintf("%t", j%2 == 0),
			})
		}
		files = append(files, WriteCSV(t, dir, fmt.Sprintf("test_data_%d.csv", i), records))
	}
	return files
}
