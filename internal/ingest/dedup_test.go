package ingest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"flixhub/pkg/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestDeduplicator(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback()

	types := NewDeduplicator(tx, TableContentTypes)
	countries := NewDeduplicator(tx, TableCountries)

	t.Run("same name resolves to the same id", func(t *testing.T) {
		first, err := types.Resolve(ctx, "Movie")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		second, err := types.Resolve(ctx, "Movie")
		if err != nil {
			t.Fatalf("resolve again: %v", err)
		}
		if first != second {
			t.Errorf("Movie resolved to %d then %d", first, second)
		}
		if types.Size() != 1 {
			t.Errorf("expected 1 distinct type, got %d", types.Size())
		}
	})

	t.Run("distinct names get distinct ids", func(t *testing.T) {
		movie, _ := types.Resolve(ctx, "Movie")
		show, err := types.Resolve(ctx, "TV Show")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if movie == show {
			t.Errorf("Movie and TV Show share id %d", movie)
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		upper, _ := countries.Resolve(ctx, "USA")
		lower, err := countries.Resolve(ctx, "usa")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if upper == lower {
			t.Error("USA and usa should be distinct countries")
		}
	})

	t.Run("categories keep independent id spaces", func(t *testing.T) {
		// Same name in two tables must not collide or interfere.
		typeID, _ := types.Resolve(ctx, "Movie")
		countryID, err := countries.Resolve(ctx, "Movie")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM countries WHERE name = 'Movie'`).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 country row named Movie, got %d", n)
		}
		_ = typeID
		_ = countryID
	})
}
