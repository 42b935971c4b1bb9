package report

import "fmt"

// FormatSeasons renders a season count with the Russian plural form the
// source dataset's reports use. The 11-14 band is checked before the
// last digit: 11 сезонов, but 21 сезон.
func FormatSeasons(n *int) string {
	if n == nil {
		return "неизвестно"
	}

	last := *n % 10
	lastTwo := *n % 100

	switch {
	case lastTwo >= 11 && lastTwo <= 14:
		return fmt.Sprintf("%d сезонов", *n)
	case last == 1:
		return fmt.Sprintf("%d сезон", *n)
	case last >= 2 && last <= 4:
		return fmt.Sprintf("%d сезона", *n)
	default:
		return fmt.Sprintf("%d сезонов", *n)
	}
}
