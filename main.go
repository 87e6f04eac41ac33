package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/errors"

	"github.com/cheddargen/cheddar/generator"
	"github.com/cheddargen/cheddar/parser"
)

func main() {
	outputDir := flag.String("output", ".", "Output directory for the generated header")
	fileName := flag.String("file", "cheddar.h", "Header file name (its stem derives the include guard)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "error: at least one input file is required")
		flag.Usage()
		os.Exit(1)
	}

	var errs errors.List
	var items []*parser.Item
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			errs.Add(err)
			continue
		}
		file, err := parser.Parse(path, string(data))
		if err != nil {
			errs.Add(err)
			continue
		}
		items = append(items, file.Items...)
	}
	if err := errs.ToError(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	gen := generator.New(generator.Config{File: *fileName})
	translateErr := gen.Translate(items)
	for _, diag := range gen.Diagnostics() {
		fmt.Fprintf(os.Stderr, "error: %s\n", diag)
	}
	if translateErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", translateErr)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(*outputDir, *fileName)
	if err := os.WriteFile(path, []byte(gen.Header()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Generated: %s\n", path)

	if len(gen.Diagnostics()) > 0 {
		os.Exit(1)
	}
}
