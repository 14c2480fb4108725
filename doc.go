// Package csvgraph converts CSV files into RDF property tables.
//
// A property table is a table whose columns are keyed by predicate URIs and
// whose rows are keyed by subject URIs, so that every present cell reads as
// one (subject, predicate, value) statement. csvgraph builds one from the
// header and records of a CSV file:
//
//   - every header field becomes a column keyed by <namespace>#<header>,
//     unless a column override supplies a different URI
//   - every data record becomes a row keyed by <source>#_<n>
//   - a reserved row-index column holds each row's ordinal
//   - cells are typed: integers, finite doubles and the literal "false" are
//     recognized, an override can pin a column's datatype, and anything else
//     stays a plain literal
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/ajitpratap0/csvgraph/pkg/builder"
//	    "github.com/ajitpratap0/csvgraph/pkg/override"
//	    "github.com/ajitpratap0/csvgraph/pkg/source"
//	)
//
//	b := builder.New(builder.Options{
//	    Namespace: "http://example.org/people",
//	    Mapping:   override.Mapping{"2": "http://xmlns.com/foaf/0.1/age>http://www.w3.org/2001/XMLSchema#integer"},
//	})
//	res, err := b.BuildHashTable(context.Background(), source.NewFile("people.csv", source.CSVOptions{}))
//
// # Storage Strategies
//
// Two table strategies share one fill algorithm:
//
//	hashmap - grows on demand, reads the source once
//	array   - pre-scans the source for its size, then fills a fixed array
//
// The array strategy returns no table at all for a source without records.
//
// # Key Packages
//
//	pkg/builder       - Strategy selection, fill engine and Builder facade
//	pkg/table         - PropertyTable contract with hash and array storage
//	pkg/rdf           - Symbols, datatypes and URI validation
//	pkg/override      - Column override parsing and .properties mapping files
//	pkg/infer         - Cell type inference
//	pkg/mint          - Column key and row subject minting
//	pkg/source        - CSV row sources (local files and S3 objects) with transparent decompression
//	pkg/config        - YAML and environment configuration
//	pkg/report        - JSON and YAML conversion summaries
//	pkg/errors        - Structured error handling
//	pkg/logger        - Structured logging
//	pkg/metrics       - Prometheus metrics
//	pkg/observability - OpenTelemetry tracing
//
// # Command Line
//
//	csvgraph convert --source people.csv --namespace http://example.org/people
//	csvgraph inspect --config csvgraph.yaml --rows 3
//	csvgraph version
package csvgraph
