package models

// Category is one deduplicated reference entity: a content type, a
// country or a rating. Names are unique within their own table and ids
// are allocated independently per table.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Content is one normalized catalog title. show_id comes from the
// source dataset and is the primary identity. Optional columns are
// pointers so absent values survive the JSON round trip as null and
// partial updates can tell "not sent" from "set to zero".
type Content struct {
	ShowID          string  `json:"show_id"`
	Title           string  `json:"title"`
	TypeID          int64   `json:"type_id"`
	Director        *string `json:"director,omitempty"`
	Cast            *string `json:"cast,omitempty"`
	CountryID       *int64  `json:"country_id,omitempty"`
	DateAdded       *string `json:"date_added,omitempty"` // ISO YYYY-MM-DD
	ReleaseYear     *int    `json:"release_year,omitempty"`
	RatingID        *int64  `json:"rating_id,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	DurationSeasons *int    `json:"duration_seasons,omitempty"`
}
