package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Sentinel names for the two category fields that are required on a
// content row. Blank input maps to these instead of NULL.
const (
	UnknownType     = "Unknown"
	UnratedLabel    = "Not specified"
	dateAddedLayout = "2006-01-02"
)

var dateLayouts = []string{
	"January 2, 2006", // the dataset's usual "September 25, 2021" form
	"2006-01-02",
}

// ParseDate tries the known date grammars in order. ok is false for
// blank or unparsable input; the caller records a diagnostic and moves on.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDuration splits the dataset's single duration column into
// minutes ("90 min") or seasons ("3 Seasons"). At most one of the two
// results is set; anything unparsable yields neither.
func ParseDuration(raw string) (minutes, seasons *int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch {
	case strings.Contains(raw, "min"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.Replace(raw, "min", "", 1)))
		if err != nil {
			return nil, nil
		}
		return &n, nil
	case strings.Contains(raw, "Season"):
		s := strings.Replace(raw, "Seasons", "", 1)
		s = strings.Replace(s, "Season", "", 1)
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, nil
		}
		return nil, &n
	default:
		return nil, nil
	}
}

// ParseYear parses a release year; ok is false for blank or junk input.
func ParseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// optionalText trims and maps empty to nil.
func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// requiredText trims and falls back to a sentinel label when blank.
// No case folding: "USA" and "usa" stay distinct names.
func requiredText(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	return raw
}
