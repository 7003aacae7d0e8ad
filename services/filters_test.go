package services

import (
	"testing"
	"time"
)

func TestDateFilterRange(t *testing.T) {
	// Wednesday
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	from, to, ok := DateFilterRange(DateFilterToday, now)
	if !ok {
		t.Fatal("today filter should be recognized")
	}
	if from.Day() != 26 || to.Sub(from) != 24*time.Hour {
		t.Errorf("today range wrong: %v - %v", from, to)
	}

	from, to, ok = DateFilterRange(DateFilterWeek, now)
	if !ok || from.Weekday() != time.Monday {
		t.Errorf("week should start on Monday, got %v", from.Weekday())
	}
	if to.Sub(from) != 7*24*time.Hour {
		t.Errorf("week range wrong: %v - %v", from, to)
	}

	from, _, ok = DateFilterRange(DateFilterMonth, now)
	if !ok || from.Day() != 1 || from.Month() != time.August {
		t.Errorf("month range wrong: %v", from)
	}

	from, to, ok = DateFilterRange(DateFilterYear, now)
	if !ok || from.Month() != time.January || to.Year() != 2027 {
		t.Errorf("year range wrong: %v - %v", from, to)
	}

	if _, _, ok := DateFilterRange("fortnight", now); ok {
		t.Error("unknown filter should not be recognized")
	}
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		total, page, per   int
		wantStart, wantEnd int
	}{
		{25, 1, 10, 0, 10},
		{25, 3, 10, 20, 25},
		{25, 4, 10, 0, 0}, // beyond last page
		{25, 0, 0, 0, 10}, // defaults
		{0, 1, 10, 0, 0},
	}
	for _, tc := range cases {
		start, end := PageBounds(tc.total, tc.page, tc.per)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("PageBounds(%d,%d,%d) = (%d,%d), want (%d,%d)",
				tc.total, tc.page, tc.per, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestPageCount(t *testing.T) {
	if got := PageCount(25, 10); got != 3 {
		t.Errorf("got %d want 3", got)
	}
	if got := PageCount(30, 10); got != 3 {
		t.Errorf("got %d want 3", got)
	}
	if got := PageCount(0, 10); got != 0 {
		t.Errorf("got %d want 0", got)
	}
}
