package report

import (
	"context"
	"database/sql"
	"fmt"
)

// Content type names the analytical queries pivot on. These match the
// source dataset; blank types land under the ingest sentinel instead.
const (
	typeMovie  = "Movie"
	typeTVShow = "TV Show"
)

// leadingCountryMin is the group-size cutoff for the leading-countries
// report.
const leadingCountryMin = 100

// Repo computes the analytical reports. Every method is a pure read and
// returns an empty (or zero-valued) report on an empty model.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// LatestYearShow is one row of the latest-year catalog: a TV show from
// the newest release year, season count already pluralized.
type LatestYearShow struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
}

// LatestYearShows lists the TV shows of the maximum known release year,
// ordered by title. Shows without a season count get the fixed unknown
// label rather than being dropped.
func (r *Repo) LatestYearShows(ctx context.Context) ([]LatestYearShow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.title, c.release_year, rt.name, c.duration_seasons
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		LEFT JOIN ratings rt ON c.rating_id = rt.id
		WHERE t.name = ?
		  AND c.release_year = (
		      SELECT MAX(release_year) FROM content WHERE release_year IS NOT NULL
		  )
		ORDER BY c.title ASC
	`, typeTVShow)
	if err != nil {
		return nil, fmt.Errorf("latest year shows: %w", err)
	}
	defer rows.Close()

	out := []LatestYearShow{}
	for rows.Next() {
		var (
			s       LatestYearShow
			rating  sql.NullString
			seasons sql.NullInt64
		)
		if err := rows.Scan(&s.Title, &s.ReleaseYear, &rating, &seasons); err != nil {
			return nil, fmt.Errorf("scan latest year show: %w", err)
		}
		s.Rating = rating.String
		if seasons.Valid {
			n := int(seasons.Int64)
			s.Duration = FormatSeasons(&n)
		} else {
			s.Duration = FormatSeasons(nil)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountryCount is a country grouped with its content count.
type CountryCount struct {
	Country      string `json:"country"`
	ContentCount int    `json:"content_count"`
}

// LeadingCountries keeps only countries with more than leadingCountryMin
// titles, largest first. Records without a country are excluded by the
// inner join.
func (r *Repo) LeadingCountries(ctx context.Context) ([]CountryCount, error) {
	return r.countryCounts(ctx, `
		SELECT co.name, COUNT(c.show_id) AS cnt
		FROM countries co
		JOIN content c ON c.country_id = co.id
		GROUP BY co.name
		HAVING COUNT(c.show_id) > ?
		ORDER BY cnt DESC
	`, leadingCountryMin)
}

// ContentByCountry is the unfiltered variant: every country with at
// least one title, largest first.
func (r *Repo) ContentByCountry(ctx context.Context) ([]CountryCount, error) {
	return r.countryCounts(ctx, `
		SELECT co.name, COUNT(c.show_id) AS cnt
		FROM countries co
		JOIN content c ON c.country_id = co.id
		GROUP BY co.name
		ORDER BY cnt DESC
	`)
}

func (r *Repo) countryCounts(ctx context.Context, query string, args ...any) ([]CountryCount, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("country counts: %w", err)
	}
	defer rows.Close()

	out := []CountryCount{}
	for rows.Next() {
		var cc CountryCount
		if err := rows.Scan(&cc.Country, &cc.ContentCount); err != nil {
			return nil, fmt.Errorf("scan country count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// LongestMovie is one row of the longest-duration percentile report.
type LongestMovie struct {
	Title           string `json:"title"`
	ReleaseYear     *int   `json:"release_year"`
	DurationMinutes int    `json:"duration_minutes"`
}

// LongestMovies returns the top one percent of movies by duration:
// limit = floor(qualifying_count / 100). A limit of zero yields an
// empty report, not an error. Ties keep ingestion order via rowid.
func (r *Repo) LongestMovies(ctx context.Context) ([]LongestMovie, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		WHERE t.name = ? AND c.duration_minutes IS NOT NULL
	`, typeMovie).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	limit := total / 100
	if limit == 0 {
		return []LongestMovie{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.title, c.release_year, c.duration_minutes
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		WHERE t.name = ? AND c.duration_minutes IS NOT NULL
		ORDER BY c.duration_minutes DESC, c.rowid ASC
		LIMIT ?
	`, typeMovie, limit)
	if err != nil {
		return nil, fmt.Errorf("longest movies: %w", err)
	}
	defer rows.Close()

	out := make([]LongestMovie, 0, limit)
	for rows.Next() {
		var (
			m    LongestMovie
			year sql.NullInt64
		)
		if err := rows.Scan(&m.Title, &year, &m.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan longest movie: %w", err)
		}
		if year.Valid {
			y := int(year.Int64)
			m.ReleaseYear = &y
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// YearAdditions is one bucket of the yearly addition pivot. Year is the
// text form of strftime's extraction.
type YearAdditions struct {
	Year   string `json:"year"`
	Movies int    `json:"movies"`
	Series int    `json:"series"`
	Total  int    `json:"total"`
}

// AdditionsByYear pivots date_added by year, newest first. Conditional
// aggregation gives the zero-fill: a year present in the data always
// reports both sub-counts, zero when that type had no additions.
func (r *Repo) AdditionsByYear(ctx context.Context) ([]YearAdditions, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT strftime('%Y', c.date_added) AS year_added,
		       SUM(CASE WHEN t.name = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN t.name = ? THEN 1 ELSE 0 END),
		       COUNT(*)
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		WHERE c.date_added IS NOT NULL
		GROUP BY year_added
		ORDER BY year_added DESC
	`, typeMovie, typeTVShow)
	if err != nil {
		return nil, fmt.Errorf("additions by year: %w", err)
	}
	defer rows.Close()

	out := []YearAdditions{}
	for rows.Next() {
		var ya YearAdditions
		if err := rows.Scan(&ya.Year, &ya.Movies, &ya.Series, &ya.Total); err != nil {
			return nil, fmt.Errorf("scan additions: %w", err)
		}
		out = append(out, ya)
	}
	return out, rows.Err()
}

// YearDuration aggregates movie durations for one release year.
type YearDuration struct {
	ReleaseYear int     `json:"release_year"`
	MinMinutes  int     `json:"min_duration"`
	MaxMinutes  int     `json:"max_duration"`
	AvgMinutes  float64 `json:"avg_duration"`
	MovieCount  int     `json:"movie_count"`
}

// MovieDurationByYear groups movies with a known duration and release
// year, newest year first.
func (r *Repo) MovieDurationByYear(ctx context.Context) ([]YearDuration, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.release_year,
		       MIN(c.duration_minutes),
		       MAX(c.duration_minutes),
		       AVG(c.duration_minutes),
		       COUNT(c.show_id)
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		WHERE t.name = ?
		  AND c.duration_minutes IS NOT NULL
		  AND c.release_year IS NOT NULL
		GROUP BY c.release_year
		ORDER BY c.release_year DESC
	`, typeMovie)
	if err != nil {
		return nil, fmt.Errorf("movie duration by year: %w", err)
	}
	defer rows.Close()

	out := []YearDuration{}
	for rows.Next() {
		var yd YearDuration
		if err := rows.Scan(&yd.ReleaseYear, &yd.MinMinutes, &yd.MaxMinutes, &yd.AvgMinutes, &yd.MovieCount); err != nil {
			return nil, fmt.Errorf("scan year duration: %w", err)
		}
		out = append(out, yd)
	}
	return out, rows.Err()
}

// MovieDurationSummary is the whole-catalog min/avg/max over movies
// with a known duration. Zero-valued when there are none.
type MovieDurationSummary struct {
	MinMinutes int     `json:"min_duration"`
	MaxMinutes int     `json:"max_duration"`
	AvgMinutes float64 `json:"avg_duration"`
}

func (r *Repo) MovieDurations(ctx context.Context) (MovieDurationSummary, error) {
	var s MovieDurationSummary
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MIN(c.duration_minutes), 0),
		       COALESCE(MAX(c.duration_minutes), 0),
		       COALESCE(AVG(c.duration_minutes), 0)
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		WHERE t.name = ? AND c.duration_minutes IS NOT NULL
	`, typeMovie).Scan(&s.MinMinutes, &s.MaxMinutes, &s.AvgMinutes)
	if err != nil {
		return s, fmt.Errorf("movie durations: %w", err)
	}
	return s, nil
}

// GroupCount is one group of a category statistic: the group key (a
// rating, country or release year) with its content count.
type GroupCount struct {
	Key          string `json:"key"`
	ContentCount int    `json:"content_count"`
}

// CategoryStats reduces a set of group counts to min/max/avg and the
// number of groups. All zeros for an empty group set.
type CategoryStats struct {
	MinContentCount int          `json:"min_content_count"`
	MaxContentCount int          `json:"max_content_count"`
	AvgContentCount float64      `json:"avg_content_count"`
	TotalGroups     int          `json:"total_groups"`
	Details         []GroupCount `json:"details,omitempty"`
}

func (r *Repo) RatingStats(ctx context.Context) (CategoryStats, error) {
	return r.groupStats(ctx, `
		SELECT rt.name, COUNT(c.show_id)
		FROM ratings rt
		JOIN content c ON c.rating_id = rt.id
		GROUP BY rt.name
	`)
}

func (r *Repo) CountryStats(ctx context.Context) (CategoryStats, error) {
	return r.groupStats(ctx, `
		SELECT co.name, COUNT(c.show_id)
		FROM countries co
		JOIN content c ON c.country_id = co.id
		GROUP BY co.name
	`)
}

func (r *Repo) ReleaseYearStats(ctx context.Context) (CategoryStats, error) {
	return r.groupStats(ctx, `
		SELECT CAST(release_year AS TEXT), COUNT(show_id)
		FROM content
		WHERE release_year IS NOT NULL
		GROUP BY release_year
		ORDER BY release_year DESC
	`)
}

func (r *Repo) groupStats(ctx context.Context, query string) (CategoryStats, error) {
	var stats CategoryStats

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return stats, fmt.Errorf("group stats: %w", err)
	}
	defer rows.Close()

	sum := 0
	for rows.Next() {
		var gc GroupCount
		if err := rows.Scan(&gc.Key, &gc.ContentCount); err != nil {
			return stats, fmt.Errorf("scan group stats: %w", err)
		}
		if stats.TotalGroups == 0 || gc.ContentCount < stats.MinContentCount {
			stats.MinContentCount = gc.ContentCount
		}
		if gc.ContentCount > stats.MaxContentCount {
			stats.MaxContentCount = gc.ContentCount
		}
		sum += gc.ContentCount
		stats.TotalGroups++
		stats.Details = append(stats.Details, gc)
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	if stats.TotalGroups > 0 {
		stats.AvgContentCount = float64(sum) / float64(stats.TotalGroups)
	}
	return stats, nil
}

// TypeRatingCount is one cell of the type×rating cross-tabulation.
type TypeRatingCount struct {
	Type         string `json:"type"`
	Rating       string `json:"rating"`
	ContentCount int    `json:"content_count"`
}

// ContentByTypeAndRating counts titles per (type, rating) pair, ordered
// by type then count descending.
func (r *Repo) ContentByTypeAndRating(ctx context.Context) ([]TypeRatingCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.name, rt.name, COUNT(c.show_id) AS cnt
		FROM content c
		JOIN content_types t ON c.type_id = t.id
		JOIN ratings rt ON c.rating_id = rt.id
		GROUP BY t.name, rt.name
		ORDER BY t.name ASC, cnt DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("content by type and rating: %w", err)
	}
	defer rows.Close()

	out := []TypeRatingCount{}
	for rows.Next() {
		var tr TypeRatingCount
		if err := rows.Scan(&tr.Type, &tr.Rating, &tr.ContentCount); err != nil {
			return nil, fmt.Errorf("scan type rating: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
