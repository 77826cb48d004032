package extract

import (
	"strconv"
	"strings"
	"time"
)

// monthsByName maps lowercase month names and abbreviations to their month.
var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// makeDate constructs a UTC date and reports whether the components describe
// a real calendar day. time.Date normalizes overflow (Feb 30 → Mar 2), so a
// round-trip comparison is the impossible-value check.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// expandYear widens a 2-digit year into the 2000s. 4-digit years pass
// through unchanged.
func expandYear(y int) int {
	if y < 100 {
		return 2000 + y
	}
	return y
}

// parseDayFirst parses day-first numeric dates: DD/MM/YYYY, DD-MM-YYYY,
// with 2- or 4-digit years.
func parseDayFirst(day, month, year string) (time.Time, bool) {
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return makeDate(expandYear(y), m, d)
}

// parseMonthName resolves a textual month, ignoring case.
func parseMonthName(name string) (time.Month, bool) {
	m, ok := monthsByName[strings.ToLower(name)]
	return m, ok
}

// truncateToDay strips the time-of-day component, keeping UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
