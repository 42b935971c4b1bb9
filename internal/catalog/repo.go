package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"flixhub/pkg/models"
)

// CategoryRepo serves one of the three category tables. The table name
// comes from the ingest constants, never from request input.
type CategoryRepo struct {
	DB    *sql.DB
	Table string
}

func NewCategoryRepo(db *sql.DB, table string) *CategoryRepo {
	return &CategoryRepo{DB: db, Table: table}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM `+r.Table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.Table, err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 16)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.Table, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Get(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM `+r.Table+` WHERE id = ?`, id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.Table, id, err)
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, name string) (*models.Category, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO `+r.Table+` (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.Table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &models.Category{ID: id, Name: name}, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id int64, name string) (*models.Category, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE `+r.Table+` SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.Table, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return &models.Category{ID: id, Name: name}, nil
}

// Delete removes the category; the schema cascades the delete to every
// content row referencing it.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM `+r.Table+` WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", r.Table, id, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

type ContentRepo struct {
	DB *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{DB: db}
}

const contentColumns = `show_id, title, type_id, director, cast_members,
	country_id, date_added, release_year, rating_id, duration_minutes, duration_seasons`

func (r *ContentRepo) List(ctx context.Context) ([]models.Content, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+contentColumns+` FROM content ORDER BY show_id`)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	out := make([]models.Content, 0, 64)
	for rows.Next() {
		c, err := scanContent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *ContentRepo) Get(ctx context.Context, showID string) (*models.Content, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE show_id = ?`, showID)
	c, err := scanContent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content %s: %w", showID, err)
	}
	return c, nil
}

func (r *ContentRepo) Create(ctx context.Context, c models.Content) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO content (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ShowID, c.Title, c.TypeID, c.Director, c.Cast, c.CountryID,
		c.DateAdded, c.ReleaseYear, c.RatingID, c.DurationMinutes, c.DurationSeasons)
	if err != nil {
		return fmt.Errorf("create content %s: %w", c.ShowID, err)
	}
	return nil
}

// Update writes the full row; the handler merges partial input into the
// current row first.
func (r *ContentRepo) Update(ctx context.Context, c models.Content) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE content SET
		  title = ?, type_id = ?, director = ?, cast_members = ?, country_id = ?,
		  date_added = ?, release_year = ?, rating_id = ?, duration_minutes = ?, duration_seasons = ?
		WHERE show_id = ?
	`, c.Title, c.TypeID, c.Director, c.Cast, c.CountryID,
		c.DateAdded, c.ReleaseYear, c.RatingID, c.DurationMinutes, c.DurationSeasons, c.ShowID)
	if err != nil {
		return false, fmt.Errorf("update content %s: %w", c.ShowID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ContentRepo) Delete(ctx context.Context, showID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM content WHERE show_id = ?`, showID)
	if err != nil {
		return false, fmt.Errorf("delete content %s: %w", showID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func scanContent(scan func(dest ...any) error) (*models.Content, error) {
	var (
		c           models.Content
		director    sql.NullString
		cast        sql.NullString
		countryID   sql.NullInt64
		dateAdded   sql.NullString
		releaseYear sql.NullInt64
		ratingID    sql.NullInt64
		minutes     sql.NullInt64
		seasons     sql.NullInt64
	)

	if err := scan(
		&c.ShowID, &c.Title, &c.TypeID, &director, &cast, &countryID,
		&dateAdded, &releaseYear, &ratingID, &minutes, &seasons,
	); err != nil {
		return nil, err
	}

	if director.Valid {
		c.Director = &director.String
	}
	if cast.Valid {
		c.Cast = &cast.String
	}
	if countryID.Valid {
		c.CountryID = &countryID.Int64
	}
	if dateAdded.Valid {
		c.DateAdded = &dateAdded.String
	}
	if releaseYear.Valid {
		y := int(releaseYear.Int64)
		c.ReleaseYear = &y
	}
	if ratingID.Valid {
		c.RatingID = &ratingID.Int64
	}
	if minutes.Valid {
		m := int(minutes.Int64)
		c.DurationMinutes = &m
	}
	if seasons.Valid {
		s := int(seasons.Int64)
		c.DurationSeasons = &s
	}
	return &c, nil
}
