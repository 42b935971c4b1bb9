package report

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"flixhub/internal/ingest"
	"flixhub/pkg/database"
)

const testHeader = "show_id,type,title,director,cast,country,date_added,release_year,duration,rating\n"

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

func loadCSV(t *testing.T, db *sql.DB, rows string) {
	t.Helper()
	_, err := ingest.NewLoader(db).Load(context.Background(), strings.NewReader(testHeader+rows))
	require.NoError(t, err)
}

func TestLatestYearShows(t *testing.T) {
	db := openTestDB(t)
	loadCSV(t, db,
		`s1,TV Show,Zebra Show,,,,,2022,2 Seasons,TV-MA`+"\n"+
			`s2,TV Show,Apple Show,,,,,2022,1 Season,TV-PG`+"\n"+
			`s3,TV Show,Mystery Show,,,,,2022,,TV-PG`+"\n"+
			`s4,TV Show,Old Show,,,,,2010,5 Seasons,TV-MA`+"\n"+
			`s5,Movie,New Movie,,,,,2022,120 min,PG-13`+"\n")

	out, err := NewRepo(db).LatestYearShows(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 3, "only TV shows of the max year")
	require.Equal(t, "Apple Show", out[0].Title)
	require.Equal(t, "Mystery Show", out[1].Title)
	require.Equal(t, "Zebra Show", out[2].Title)

	require.Equal(t, "1 сезон", out[0].Duration)
	require.Equal(t, "неизвестно", out[1].Duration)
	require.Equal(t, "2 сезона", out[2].Duration)
	require.Equal(t, "TV-PG", out[0].Rating)
	require.Equal(t, 2022, out[0].ReleaseYear)
}

func TestLeadingCountries(t *testing.T) {
	db := openTestDB(t)

	var b strings.Builder
	for i := 0; i < 101; i++ {
		fmt.Fprintf(&b, "in%d,Movie,Indian Title %d,,,India,,2020,100 min,PG\n", i, i)
	}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "fr%d,Movie,French Title %d,,,France,,2020,100 min,PG\n", i, i)
	}
	// records without a country never count
	b.WriteString("x1,Movie,Stateless,,,,,2020,100 min,PG\n")
	loadCSV(t, db, b.String())

	out, err := NewRepo(db).LeadingCountries(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 1, "count <= 100 is excluded")
	require.Equal(t, "India", out[0].Country)
	require.Equal(t, 101, out[0].ContentCount)
}

func TestLongestMovies(t *testing.T) {
	db := openTestDB(t)

	var b strings.Builder
	for i := 1; i <= 250; i++ {
		fmt.Fprintf(&b, "m%03d,Movie,Movie %03d,,,,,2020,%d min,PG\n", i, i, i)
	}
	// TV shows and movies without a duration never qualify
	b.WriteString("tv1,TV Show,Some Show,,,,,2020,9 Seasons,TV-MA\n")
	b.WriteString("nd1,Movie,No Duration,,,,,2020,,PG\n")
	loadCSV(t, db, b.String())

	out, err := NewRepo(db).LongestMovies(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2, "floor(250*0.01) = 2")
	require.Equal(t, 250, out[0].DurationMinutes)
	require.Equal(t, 249, out[1].DurationMinutes)
}

func TestLongestMoviesEmptyWhenBelowCutoff(t *testing.T) {
	db := openTestDB(t)

	var b strings.Builder
	for i := 1; i <= 99; i++ {
		fmt.Fprintf(&b, "m%03d,Movie,Movie %03d,,,,,2020,%d min,PG\n", i, i, i)
	}
	loadCSV(t, db, b.String())

	out, err := NewRepo(db).LongestMovies(context.Background())
	require.NoError(t, err)
	require.Empty(t, out, "limit floor(99*0.01) = 0 yields an empty report")
}

func TestAdditionsByYearZeroFill(t *testing.T) {
	db := openTestDB(t)

	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "m%d,Movie,Movie %d,,,,2019-03-0%d,2019,90 min,PG\n", i, i, i+1)
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "s%d,TV Show,Show %d,,,,2020-06-0%d,2020,1 Season,TV-PG\n", i, i, i+1)
	}
	// no date_added: excluded from the pivot entirely
	b.WriteString("x1,Movie,Dateless,,,,,2019,90 min,PG\n")
	loadCSV(t, db, b.String())

	out, err := NewRepo(db).AdditionsByYear(context.Background())
	require.NoError(t, err)

	require.Equal(t, []YearAdditions{
		{Year: "2020", Movies: 0, Series: 3, Total: 3},
		{Year: "2019", Movies: 5, Series: 0, Total: 5},
	}, out)
}

func TestMovieDurationByYear(t *testing.T) {
	db := openTestDB(t)
	loadCSV(t, db,
		`m1,Movie,Short,,,,,2020,60 min,PG`+"\n"+
			`m2,Movie,Long,,,,,2020,120 min,PG`+"\n"+
			`m3,Movie,Older,,,,,2019,100 min,PG`+"\n"+
			`m4,Movie,No Year,,,,,,90 min,PG`+"\n"+
			`s1,TV Show,Show,,,,,2020,2 Seasons,TV-PG`+"\n")

	out, err := NewRepo(db).MovieDurationByYear(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2)
	require.Equal(t, 2020, out[0].ReleaseYear)
	require.Equal(t, 60, out[0].MinMinutes)
	require.Equal(t, 120, out[0].MaxMinutes)
	require.InDelta(t, 90.0, out[0].AvgMinutes, 1e-9)
	require.Equal(t, 2, out[0].MovieCount)
	require.Equal(t, 2019, out[1].ReleaseYear)
}

func TestCategoryStats(t *testing.T) {
	db := openTestDB(t)

	t.Run("empty model reports zeros", func(t *testing.T) {
		for name, fn := range map[string]func(context.Context) (CategoryStats, error){
			"rating":  NewRepo(db).RatingStats,
			"country": NewRepo(db).CountryStats,
			"year":    NewRepo(db).ReleaseYearStats,
		} {
			stats, err := fn(context.Background())
			require.NoError(t, err, name)
			require.Equal(t, CategoryStats{}, stats, name)
		}
	})

	loadCSV(t, db,
		`s1,Movie,A,,,USA,,2020,90 min,PG`+"\n"+
			`s2,Movie,B,,,USA,,2020,90 min,PG`+"\n"+
			`s3,Movie,C,,,USA,,2021,90 min,R`+"\n"+
			`s4,Movie,D,,,France,,2021,90 min,R`+"\n"+
			`s5,Movie,E,,,,,2021,90 min,R`+"\n")

	t.Run("rating stats", func(t *testing.T) {
		stats, err := NewRepo(db).RatingStats(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, stats.TotalGroups) // PG, R
		require.Equal(t, 2, stats.MinContentCount)
		require.Equal(t, 3, stats.MaxContentCount)
		require.InDelta(t, 2.5, stats.AvgContentCount, 1e-9)
		require.Len(t, stats.Details, 2)
	})

	t.Run("country stats skip absent country", func(t *testing.T) {
		stats, err := NewRepo(db).CountryStats(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, stats.TotalGroups) // USA, France
		require.Equal(t, 1, stats.MinContentCount)
		require.Equal(t, 3, stats.MaxContentCount)
		require.InDelta(t, 2.0, stats.AvgContentCount, 1e-9)
	})

	t.Run("release year stats", func(t *testing.T) {
		stats, err := NewRepo(db).ReleaseYearStats(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, stats.TotalGroups)
		require.Equal(t, 2, stats.MinContentCount)
		require.Equal(t, 3, stats.MaxContentCount)
	})
}

func TestContentByTypeAndRating(t *testing.T) {
	db := openTestDB(t)
	loadCSV(t, db,
		`s1,Movie,A,,,,,2020,90 min,PG`+"\n"+
			`s2,Movie,B,,,,,2020,90 min,PG`+"\n"+
			`s3,Movie,C,,,,,2020,90 min,R`+"\n"+
			`s4,TV Show,D,,,,,2020,1 Season,TV-MA`+"\n")

	out, err := NewRepo(db).ContentByTypeAndRating(context.Background())
	require.NoError(t, err)

	require.Equal(t, []TypeRatingCount{
		{Type: "Movie", Rating: "PG", ContentCount: 2},
		{Type: "Movie", Rating: "R", ContentCount: 1},
		{Type: "TV Show", Rating: "TV-MA", ContentCount: 1},
	}, out)
}

func TestReportsDeterministicAcrossReloads(t *testing.T) {
	db := openTestDB(t)

	src := `s1,Movie,Alpha,,,USA,2021-01-01,2021,90 min,PG` + "\n" +
		`s2,TV Show,Beta,,,India,2020-05-05,2021,3 Seasons,TV-MA` + "\n" +
		`s3,Movie,Gamma,,,USA,2021-02-02,2019,150 min,R` + "\n"

	repo := NewRepo(db)
	ctx := context.Background()

	loadCSV(t, db, src)
	shows1, err := repo.LatestYearShows(ctx)
	require.NoError(t, err)
	adds1, err := repo.AdditionsByYear(ctx)
	require.NoError(t, err)
	cross1, err := repo.ContentByTypeAndRating(ctx)
	require.NoError(t, err)

	loadCSV(t, db, src)
	shows2, err := repo.LatestYearShows(ctx)
	require.NoError(t, err)
	adds2, err := repo.AdditionsByYear(ctx)
	require.NoError(t, err)
	cross2, err := repo.ContentByTypeAndRating(ctx)
	require.NoError(t, err)

	require.Equal(t, shows1, shows2)
	require.Equal(t, adds1, adds2)
	require.Equal(t, cross1, cross2)
}

func TestMovieDurations(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	t.Run("empty model", func(t *testing.T) {
		s, err := repo.MovieDurations(context.Background())
		require.NoError(t, err)
		require.Equal(t, MovieDurationSummary{}, s)
	})

	loadCSV(t, db,
		`m1,Movie,A,,,,,2020,60 min,PG`+"\n"+
			`m2,Movie,B,,,,,2020,180 min,PG`+"\n")

	s, err := repo.MovieDurations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 60, s.MinMinutes)
	require.Equal(t, 180, s.MaxMinutes)
	require.InDelta(t, 120.0, s.AvgMinutes, 1e-9)
}
