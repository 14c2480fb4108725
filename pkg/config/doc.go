// Package config loads csvgraph conversion settings.
//
// A configuration names the source file (or s3://bucket/key object), how it is tokenized and which table
// strategy stores it, and carries the column overrides that replace minted
// column keys or pin a datatype.
//
// # Usage
//
//	cfg, err := config.Load("csvgraph.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//	opts, err := cfg.BuilderOptions(logger.Get())
//
// # File Format
//
//	source: data/people.csv
//	namespace: http://example.org/people
//	storage: array            # or hashmap
//	mapping:
//	  "1": http://xmlns.com/foaf/0.1/name
//	  "2": http://xmlns.com/foaf/0.1/age>http://www.w3.org/2001/XMLSchema#integer
//	mapping_file: overrides.properties
//	datatypes:
//	  - http://example.org/dt/currency
//	csv:
//	  delimiter: ";"
//	  compression: auto       # none, gzip, zstd, lz4, snappy, s2
//	s3:                       # only read for s3:// sources
//	  region: eu-west-1
//	  endpoint: http://localhost:9000
//	logging:
//	  level: debug
//
// # Environment
//
// ${VAR_NAME} references in the file are substituted before parsing, and
// every scalar key can be overridden with a CSVGRAPH_ variable where dots
// become underscores, for example CSVGRAPH_STORAGE or
// CSVGRAPH_LOGGING_LEVEL.
package config
