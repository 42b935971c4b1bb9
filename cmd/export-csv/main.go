package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flixhub/pkg/database"
)

func main() {
	var (
		output = flag.String("output", "data/netflix_titles_export.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportContent(ctx, db, *output); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported catalog to %s", *output)
}

// exportContent writes the normalized model back out in the source
// column set, with category references resolved to their names and the
// two duration columns folded into the dataset's single duration field.
func exportContent(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"show_id", "type", "title", "director", "cast",
		"country", "date_added", "release_year", "duration", "rating",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.show_id, t.name, c.title, c.director, c.cast_members,
		       co.name, c.date_added, c.release_year,
		       c.duration_minutes, c.duration_seasons, rt.name
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		LEFT JOIN countries co ON c.country_id = co.id
		LEFT JOIN ratings rt ON c.rating_id = rt.id
		ORDER BY c.show_id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			showID    string
			typeName  string
			title     string
			director  sql.NullString
			cast      sql.NullString
			country   sql.NullString
			dateAdded sql.NullString
			year      sql.NullInt64
			minutes   sql.NullInt64
			seasons   sql.NullInt64
			rating    sql.NullString
		)

		if err := rows.Scan(&showID, &typeName, &title, &director, &cast,
			&country, &dateAdded, &year, &minutes, &seasons, &rating); err != nil {
			return err
		}

		releaseYear := ""
		if year.Valid {
			releaseYear = strconv.FormatInt(year.Int64, 10)
		}

		duration := ""
		switch {
		case minutes.Valid:
			duration = strconv.FormatInt(minutes.Int64, 10) + " min"
		case seasons.Valid && seasons.Int64 == 1:
			duration = "1 Season"
		case seasons.Valid:
			duration = strconv.FormatInt(seasons.Int64, 10) + " Seasons"
		}

		if err := w.Write([]string{
			showID,
			typeName,
			title,
			director.String,
			cast.String,
			country.String,
			dateAdded.String,
			releaseYear,
			duration,
			rating.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
