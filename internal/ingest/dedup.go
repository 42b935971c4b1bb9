package ingest

import (
	"context"
	"database/sql"
	"fmt"
)

// Category table names the deduplicator may write to.
const (
	TableContentTypes = "content_types"
	TableCountries    = "countries"
	TableRatings      = "ratings"
)

// Deduplicator resolves a trimmed category name to its row id within a
// single load transaction, inserting the row the first time the name is
// seen. One instance per category table per load, so id spaces never
// mix and a rolled-back load discards the whole mapping with the tx.
type Deduplicator struct {
	tx    *sql.Tx
	table string
	ids   map[string]int64
}

func NewDeduplicator(tx *sql.Tx, table string) *Deduplicator {
	return &Deduplicator{
		tx:    tx,
		table: table,
		ids:   make(map[string]int64),
	}
}

// Resolve returns the id for name, creating the category row on first
// sight. Names are matched exactly; callers trim before resolving.
func (d *Deduplicator) Resolve(ctx context.Context, name string) (int64, error) {
	if id, ok := d.ids[name]; ok {
		return id, nil
	}

	res, err := d.tx.ExecContext(ctx, `INSERT INTO `+d.table+` (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert %s %q: %w", d.table, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for %s %q: %w", d.table, name, err)
	}

	d.ids[name] = id
	return id, nil
}

// Size reports how many distinct names this load has seen so far.
func (d *Deduplicator) Size() int {
	return len(d.ids)
}
