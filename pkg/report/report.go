// Package report summarizes a built property table for people and scripts.
// Summaries are diagnostics: they describe the shape of a table and sample a
// few rows, they are not a graph serialization.
package report

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/csvgraph/pkg/builder"
	"github.com/ajitpratap0/csvgraph/pkg/infer"
)

// Format is an output encoding for summaries.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the format named s. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Summary describes one conversion.
type Summary struct {
	Source   string `json:"source" yaml:"source"`
	Strategy string `json:"strategy" yaml:"strategy"`
	// Empty is set when the array strategy found no records and built no
	// table.
	Empty    bool           `json:"empty" yaml:"empty"`
	Rows     int            `json:"rows" yaml:"rows"`
	Cells    int            `json:"cells" yaml:"cells"`
	Skipped  int            `json:"skipped" yaml:"skipped"`
	Dropped  int            `json:"dropped" yaml:"dropped"`
	Inferred map[string]int `json:"inferred,omitempty" yaml:"inferred,omitempty"`
	Columns  []Column       `json:"columns" yaml:"columns"`
	Sample   []Row          `json:"sample,omitempty" yaml:"sample,omitempty"`
	Duration string         `json:"duration" yaml:"duration"`

	// Resources is filled by callers that measured the conversion.
	Resources *Resources `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// Column describes one column: its key, how many rows hold a value and the
// datatypes of those values. Plain literals are counted under "".
type Column struct {
	Key       string         `json:"key" yaml:"key"`
	Values    int            `json:"values" yaml:"values"`
	Datatypes map[string]int `json:"datatypes,omitempty" yaml:"datatypes,omitempty"`
}

// Row is a sampled row.
type Row struct {
	Subject string `json:"subject" yaml:"subject"`
	Cells   []Cell `json:"cells" yaml:"cells"`
}

// Cell is one present value of a sampled row.
type Cell struct {
	Column   string `json:"column" yaml:"column"`
	Value    string `json:"value" yaml:"value"`
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// Summarize describes res, sampling at most sample rows from the start of
// the table.
func Summarize(sourceID string, res *builder.Result, sample int) *Summary {
	s := &Summary{
		Source:   sourceID,
		Strategy: res.Strategy,
		Duration: res.Duration.String(),
		Columns:  []Column{},
	}
	if res.Stats != nil {
		s.Rows = res.Stats.Rows
		s.Cells = res.Stats.Cells
		s.Skipped = res.Stats.Skipped
		s.Dropped = res.Stats.Dropped
		s.Inferred = inferred(res.Stats.Inferred)
	}
	if res.Table == nil {
		s.Empty = true
		return s
	}

	for _, col := range res.Table.Columns() {
		c := Column{Key: col.Key().URI()}
		for _, v := range col.Values() {
			c.Values++
			if c.Datatypes == nil {
				c.Datatypes = make(map[string]int)
			}
			c.Datatypes[v.Datatype()]++
		}
		s.Columns = append(s.Columns, c)
	}

	for i, r := range res.Table.Rows() {
		if i >= sample {
			break
		}
		row := Row{Subject: r.Subject().URI()}
		for _, col := range r.Columns() {
			v, _ := r.Value(col)
			row.Cells = append(row.Cells, Cell{
				Column:   col.Key().URI(),
				Value:    v.Lexical(),
				Datatype: v.Datatype(),
			})
		}
		s.Sample = append(s.Sample, row)
	}
	return s
}

func inferred(kinds map[infer.Kind]int) map[string]int {
	if len(kinds) == 0 {
		return nil
	}
	out := make(map[string]int, len(kinds))
	for k, n := range kinds {
		out[string(k)] = n
	}
	return out
}

// Write encodes s to w in format f.
func Write(w io.Writer, f Format, s *Summary) error {
	switch f {
	case FormatJSON, "":
		return WriteJSON(w, s)
	case FormatYAML:
		return WriteYAML(w, s)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// WriteJSON encodes s as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteYAML encodes s as YAML.
func WriteYAML(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

