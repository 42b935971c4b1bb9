package report

import "testing"

func TestFormatSeasons(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "1 сезон"},
		{2, "2 сезона"},
		{3, "3 сезона"},
		{4, "4 сезона"},
		{5, "5 сезонов"},
		{10, "10 сезонов"},
		{11, "11 сезонов"}, // teen band beats the last-digit rule
		{12, "12 сезонов"},
		{14, "14 сезонов"},
		{15, "15 сезонов"},
		{21, "21 сезон"}, // last digit 1, outside the 11-14 band
		{22, "22 сезона"},
		{100, "100 сезонов"},
		{111, "111 сезонов"},
		{121, "121 сезон"},
	}

	for _, tc := range cases {
		n := tc.n
		if got := FormatSeasons(&n); got != tc.want {
			t.Errorf("FormatSeasons(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatSeasonsAbsent(t *testing.T) {
	if got := FormatSeasons(nil); got != "неизвестно" {
		t.Errorf("FormatSeasons(nil) = %q", got)
	}
}
