package main

import (
	"context"
	"flag"
	"log"
	"time"

	"flixhub/internal/ingest"
	"flixhub/pkg/database"
)

func main() {
	var (
		input        = flag.String("input", "data/netflix_titles.csv", "input CSV path for catalog titles")
		requireTitle = flag.Bool("require-title", true, "reject rows without a title")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	loader := ingest.NewLoader(db)
	loader.Opts.RequireTitle = *requireTitle

	res, err := loader.LoadFile(ctx, *input)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %s: %d records loaded, %d rows rejected, %d warnings",
		*input, res.RecordsLoaded, res.RowsRejected, len(res.Diagnostics))
}
