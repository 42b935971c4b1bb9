package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Options controls per-row rejection. A missing show_id always rejects
// the row; whether a missing title does too is configurable.
type Options struct {
	RequireTitle bool
}

// Loader replaces the whole normalized model from one tabular source.
type Loader struct {
	DB   *sql.DB
	Opts Options
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{DB: db, Opts: Options{RequireTitle: true}}
}

// Result summarizes one load run. Diagnostics are the non-fatal field
// parse warnings plus one entry per rejected row.
type Result struct {
	RunID         string   `json:"run_id"`
	RecordsLoaded int      `json:"records_loaded"`
	RowsRejected  int      `json:"rows_rejected"`
	Diagnostics   []string `json:"diagnostics,omitempty"`
}

func (res *Result) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	res.Diagnostics = append(res.Diagnostics, msg)
	log.Printf("load %s: %s", res.RunID, msg)
}

// LoadFile runs Load against a file on disk. A missing or unreadable
// file fails the run before anything is cleared.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Load wipes the model and reloads it from src inside one transaction:
// either the new dataset lands completely or the previous one stays.
// Category rows are created by the deduplicators as names first appear,
// so every content row references ids that already exist in the tx.
func (l *Loader) Load(ctx context.Context, src io.Reader) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// records before the categories they reference
	for _, table := range []string{"content", TableContentTypes, TableCountries, TableRatings} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	types := NewDeduplicator(tx, TableContentTypes)
	countries := NewDeduplicator(tx, TableCountries)
	ratings := NewDeduplicator(tx, TableRatings)

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO content (show_id, title, type_id, director, cast_members,
		                     country_id, date_added, release_year, rating_id,
		                     duration_minutes, duration_seasons)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(show_id) DO UPDATE SET
		  title = excluded.title,
		  type_id = excluded.type_id,
		  director = excluded.director,
		  cast_members = excluded.cast_members,
		  country_id = excluded.country_id,
		  date_added = excluded.date_added,
		  release_year = excluded.release_year,
		  rating_id = excluded.rating_id,
		  duration_minutes = excluded.duration_minutes,
		  duration_seasons = excluded.duration_seasons
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	line := 1 // header
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if len(row) == 0 {
			continue
		}

		showID := valueAt(header, row, "show_id")
		title := valueAt(header, row, "title")
		if showID == "" || (l.Opts.RequireTitle && title == "") {
			res.RowsRejected++
			res.warnf("row %d rejected: missing show_id or title", line)
			continue
		}

		typeID, err := types.Resolve(ctx, requiredText(valueAt(header, row, "type"), UnknownType))
		if err != nil {
			return nil, err
		}

		var countryID *int64
		if name := optionalText(valueAt(header, row, "country")); name != nil {
			id, err := countries.Resolve(ctx, *name)
			if err != nil {
				return nil, err
			}
			countryID = &id
		}

		ratingID, err := ratings.Resolve(ctx, requiredText(valueAt(header, row, "rating"), UnratedLabel))
		if err != nil {
			return nil, err
		}

		var dateAdded *string
		if raw := valueAt(header, row, "date_added"); raw != "" {
			if t, ok := ParseDate(raw); ok {
				s := t.Format(dateAddedLayout)
				dateAdded = &s
			} else {
				res.warnf("row %d (%s): unparsable date_added %q", line, showID, raw)
			}
		}

		var releaseYear *int
		if raw := valueAt(header, row, "release_year"); raw != "" {
			if y, ok := ParseYear(raw); ok {
				releaseYear = &y
			} else {
				res.warnf("row %d (%s): unparsable release_year %q", line, showID, raw)
			}
		}

		minutes, seasons := ParseDuration(valueAt(header, row, "duration"))
		if raw := valueAt(header, row, "duration"); raw != "" && minutes == nil && seasons == nil {
			res.warnf("row %d (%s): unparsable duration %q", line, showID, raw)
		}

		if _, err := stmt.ExecContext(
			ctx,
			showID,
			title,
			typeID,
			optionalText(valueAt(header, row, "director")),
			optionalText(valueAt(header, row, "cast")),
			countryID,
			dateAdded,
			releaseYear,
			ratingID,
			minutes,
			seasons,
		); err != nil {
			return nil, fmt.Errorf("insert content %s: %w", showID, err)
		}
		res.RecordsLoaded++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	log.Printf("load %s: %d records loaded, %d rejected (%d types, %d countries, %d ratings)",
		res.RunID, res.RecordsLoaded, res.RowsRejected, types.Size(), countries.Size(), ratings.Size())
	return res, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
