package config_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/csvgraph/pkg/config"
)

// ExampleDefault shows the defaults every loaded configuration starts from.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Storage: %s\n", cfg.Storage)
	fmt.Printf("Delimiter: %q\n", cfg.CSV.Delimiter)
	fmt.Printf("Compression: %s\n", cfg.CSV.Compression)
	fmt.Printf("Log level: %s\n", cfg.Logging.Level)

	// Output:
	// Storage: hashmap
	// Delimiter: ","
	// Compression: auto
	// Log level: info
}

// ExampleConfig_Validate shows how to validate a configuration before
// converting.
func ExampleConfig_Validate() {
	cfg := config.Default()
	fmt.Println(cfg.Validate())

	cfg.Source = "people.csv"
	cfg.Mapping = map[string]string{"0": "http://ex/id"}
	fmt.Println(cfg.Validate())

	cfg.Mapping = map[string]string{"1": "http://ex/id"}
	fmt.Println(cfg.Validate())

	// Output:
	// config: source is required
	// config: mapping keys must be 1-based column ordinals
	// <nil>
}

// ExampleLoad demonstrates loading a YAML file with environment variable
// substitution.
func ExampleLoad() {
	dir, err := os.MkdirTemp("", "csvgraph-config")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	os.Setenv("PEOPLE_NS", "http://example.org/people")
	defer os.Unsetenv("PEOPLE_NS")

	path := filepath.Join(dir, "csvgraph.yaml")
	content := "source: people.csv\nnamespace: ${PEOPLE_NS}\nstorage: array\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cfg.Namespace)
	fmt.Println(cfg.Storage)
	fmt.Println(cfg.CSV.Delimiter)

	// Output:
	// http://example.org/people
	// array
	// ,
}
