// Command extract runs a single extraction from a file or stdin and prints
// the result as JSON. It is the manual-entry and debugging path; no server
// required.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/campuswatch/extractor/internal/classifier"
	"github.com/campuswatch/extractor/internal/domain"
	"github.com/campuswatch/extractor/internal/extractor"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/taxonomy"
)

func main() {
	var (
		taxonomyPath = flag.String("taxonomy", "offense_list.json", "path to the offense taxonomy")
		entityType   = flag.String("entity", "student", "entity type: student, faculty, or staff")
		inputPath    = flag.String("file", "", "input text file (default: stdin)")
		detectAll    = flag.Bool("all-offenses", false, "print every offense match instead of the extraction result")
		logLevel     = flag.String("log-level", "error", "log level")
	)
	flag.Parse()

	logger := logging.Must(logging.Config{
		Level:  *logLevel,
		Format: "console",
	})
	defer func() { _ = logger.Sync() }()

	text, err := readInput(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	tax, err := taxonomy.Load(*taxonomyPath, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load taxonomy:", err)
		os.Exit(1)
	}

	engine := extractor.NewEngine(classifier.New(tax, logger), logger)
	ctx := context.Background()

	var out any
	if *detectAll {
		out = engine.DetectOffenses(ctx, text)
	} else {
		out = engine.Extract(ctx, text, domain.ParseEntityType(*entityType))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode result:", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
