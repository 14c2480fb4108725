package mint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/csvgraph/pkg/rdf"
)

func TestSafeLocalName(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"name", "name"},
		{"  age  ", "age"},
		{"first name", "first%20name"},
		{"a#b", "a%23b"},
		{"price (EUR)", "price%20(EUR)"},
		{"naïve", "na%C3%AFve"},
		{"x/y?z", "x%2Fy%3Fz"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got := SafeLocalName(tt.header)
			assert.Equal(t, tt.expected, got)
			if got != "" {
				assert.NoError(t, rdf.IsValidURI("http://ex/#"+got))
			}
		})
	}
}

func TestSafeLocalNameDistinct(t *testing.T) {
	headers := []string{"a b", "a_b", "a%20b", "a+b", "A b"}
	seen := map[string]string{}
	for _, h := range headers {
		name := SafeLocalName(h)
		prev, dup := seen[name]
		require.False(t, dup, "%q and %q collide on %q", prev, h, name)
		seen[name] = h
	}
}

func TestColumnKey(t *testing.T) {
	assert.Equal(t, "http://ex/#name", ColumnKey("http://ex/", "name"))
	assert.Equal(t, "http://ex/data#first%20name", ColumnKey("http://ex/data", "first name"))
}

func TestColumnKeyFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")

	key := ColumnKey(path, "age")
	assert.Equal(t, rdf.ResolveIRI(path)+"#age", key)
	assert.Contains(t, key, "file://")
	assert.NoError(t, rdf.IsValidURI(key))
}

func TestRowSubject(t *testing.T) {
	assert.Equal(t, "http://ex/data.csv#_1", RowSubject(1, "http://ex/data.csv"))
	assert.NotEqual(t, RowSubject(1, "http://ex/a.csv"), RowSubject(2, "http://ex/a.csv"))
	assert.NotEqual(t, RowSubject(1, "http://ex/a.csv"), RowSubject(1, "http://ex/b.csv"))
	assert.Equal(t, RowSubject(7, "http://ex/a.csv"), RowSubject(7, "http://ex/a.csv"))
}

func TestRowKeyIsShared(t *testing.T) {
	assert.True(t, RowKey.IsURI())
	assert.Equal(t, RowURI, RowKey.URI())
}
