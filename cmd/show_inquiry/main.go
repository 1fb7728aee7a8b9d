package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/content"
	"portfolio/internal/database"
	apperrors "portfolio/pkg/errors"
)

// RecordGetter loads a stored document by ID
type RecordGetter interface {
	Get(ctx context.Context, id string) (*content.Record, error)
}

// show_inquiry prints a stored inquiry from the database content backend.
//
//	go run ./cmd/show_inquiry <record-id>
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: show_inquiry <record-id>")
		return 2
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	if cfg.Content.Backend != config.BackendDatabase {
		log.Printf("CONTENT_BACKEND is %q; inquiries are only readable here with the database backend", cfg.Content.Backend)
		return 1
	}

	// Initialize database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Printf("Failed to initialize database: %v", err)
		return 1
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store := database.NewDocumentStore(db, cfg.Content.Timeout)
	return printInquiry(context.Background(), store, args[0], os.Stdout)
}

// printInquiry writes the record as indented JSON and returns the exit code
func printInquiry(ctx context.Context, store RecordGetter, id string, w io.Writer) int {
	rec, err := store.Get(ctx, id)
	if apperrors.IsNotFound(err) {
		fmt.Fprintf(w, "No inquiry with id %s\n", id)
		return 1
	}
	if err != nil {
		log.Printf("Failed to load inquiry: %v", err)
		return 1
	}

	out := map[string]any{
		"_id":        rec.ID,
		"_type":      rec.Type,
		"_createdAt": rec.CreatedAt,
	}
	for k, v := range rec.Fields {
		out[k] = v
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Printf("Failed to encode inquiry: %v", err)
		return 1
	}
	return 0
}
