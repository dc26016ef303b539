package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/clems4ever/mavtraits/converter"
)

func main() {
	// Paths are relative to the repository root
	matches, err := filepath.Glob("converter/testdata/*.xml")
	if err != nil {
		log.Fatalf("Failed to list fixtures: %v", err)
	}
	if len(matches) == 0 {
		log.Fatalf("No fixtures found. Please run this command from the repository root.")
	}

	conv, err := converter.New(converter.DefaultOptions())
	if err != nil {
		log.Fatalf("Failed to create converter: %v", err)
	}

	for _, inputFile := range matches {
		base := strings.TrimSuffix(inputFile, ".xml")
		fmt.Printf("Reading %s...\n", inputFile)
		inputBytes, err := os.ReadFile(inputFile)
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}

		nodes, err := conv.Generic(bytes.NewReader(inputBytes))
		if err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}

		dump, err := converter.RenderGeneric(nodes)
		if err != nil {
			log.Fatalf("Rendering generic dump failed: %v", err)
		}
		writeGolden(base+"_generic.yaml", []byte(dump))

		// Both refit paths must agree before a golden is accepted.
		fromTree, _ := converter.FromGeneric(nodes, converter.DefaultOptions())
		fromLines, _ := converter.RefitLines(strings.Split(strings.TrimSuffix(dump, "\n"), "\n"), nil)

		var tree, lines bytes.Buffer
		if err := converter.WriteSchema(&tree, fromTree); err != nil {
			log.Fatalf("Writing schema failed: %v", err)
		}
		if err := converter.WriteSchema(&lines, fromLines); err != nil {
			log.Fatalf("Writing schema failed: %v", err)
		}
		if !bytes.Equal(tree.Bytes(), lines.Bytes()) {
			log.Fatalf("Structural and line refit disagree on %s", inputFile)
		}
		writeGolden(base+"_schema.yaml", tree.Bytes())
	}

	fmt.Println("Done. Golden files updated.")
}

func writeGolden(path string, data []byte) {
	fmt.Printf("Writing to %s...\n", path)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}
}
