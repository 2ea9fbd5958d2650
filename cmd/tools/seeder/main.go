package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/noah-isme/pricing-engine/internal/catalog"
)

// Writes the built-in sample pricing tables to a JSON file so operators have
// a working template to edit before pointing PRICING_TABLES_PATH at it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	defaultPath := os.Getenv("PRICING_TABLES_PATH")
	if defaultPath == "" {
		defaultPath = "pricing-tables.json"
	}
	out := flag.String("out", defaultPath, "path to write the pricing tables JSON file")
	force := flag.Bool("force", false, "overwrite the output file if it already exists")
	flag.Parse()

	if !*force {
		if _, err := os.Stat(*out); err == nil {
			log.Fatalf("%s already exists, pass -force to overwrite", *out)
		}
	}

	tables := catalog.SampleTables()
	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode tables: %v", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d pricing tables to %s", len(tables), *out)
}
