package services

import "time"

const (
	DateFilterToday = "today"
	DateFilterWeek  = "week"
	DateFilterMonth = "month"
	DateFilterYear  = "year"
)

// DefaultRecordsPerPage is used when a page size is missing or invalid.
const DefaultRecordsPerPage = 10

// DateFilterRange converts a named filter into a [from, to) interval
// relative to now. Unknown filters return ok=false, meaning no restriction.
func DateFilterRange(filter string, now time.Time) (from, to time.Time, ok bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case DateFilterToday:
		return startOfDay, startOfDay.AddDate(0, 0, 1), true
	case DateFilterWeek:
		// week starts on Monday
		offset := (int(now.Weekday()) + 6) % 7
		start := startOfDay.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), true
	case DateFilterMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), true
	case DateFilterYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// PageBounds computes the slice window for one page. Page numbers start
// at 1; out-of-range pages yield an empty window.
func PageBounds(total, page, recordsPerPage int) (start, end int) {
	if recordsPerPage <= 0 {
		recordsPerPage = DefaultRecordsPerPage
	}
	if page <= 0 {
		page = 1
	}

	start = (page - 1) * recordsPerPage
	if start >= total {
		return 0, 0
	}
	end = start + recordsPerPage
	if end > total {
		end = total
	}
	return start, end
}

// PageCount returns how many pages are needed for total records.
func PageCount(total, recordsPerPage int) int {
	if recordsPerPage <= 0 {
		recordsPerPage = DefaultRecordsPerPage
	}
	if total <= 0 {
		return 0
	}
	return (total + recordsPerPage - 1) / recordsPerPage
}
