package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reAgo         = regexp.MustCompile(`(?i)\b(\d+)\s+(day|week|month)s?\s+ago\b`)
	reLastWeekday = regexp.MustCompile(`(?i)\blast\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	reLastPeriod  = regexp.MustCompile(`(?i)\blast\s+(week|month)\b`)
	reYesterday   = regexp.MustCompile(`(?i)\byesterday\b`)
)

// resolveRelative resolves the first relative-time phrase in text against
// the base date. Returns the resolved date, the matched phrase, and whether
// anything matched.
func resolveRelative(text string, base time.Time) (time.Time, string, bool) {
	base = truncateToDay(base)

	if m := reAgo.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			return time.Time{}, "", false
		}
		var d time.Time
		switch strings.ToLower(m[2]) {
		case "day":
			d = base.AddDate(0, 0, -n)
		case "week":
			d = base.AddDate(0, 0, -7*n)
		case "month":
			d = base.AddDate(0, -n, 0)
		}
		return d, m[0], true
	}

	if m := reLastWeekday.FindStringSubmatch(text); m != nil {
		target, ok := weekdaysByName[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, "", false
		}
		// "last Friday" means the most recent Friday strictly before today.
		delta := int(base.Weekday()-target+7) % 7
		if delta == 0 {
			delta = 7
		}
		return base.AddDate(0, 0, -delta), m[0], true
	}

	if m := reLastPeriod.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "week":
			return base.AddDate(0, 0, -7), m[0], true
		case "month":
			return base.AddDate(0, -1, 0), m[0], true
		}
	}

	if m := reYesterday.FindString(text); m != "" {
		return base.AddDate(0, 0, -1), m, true
	}

	return time.Time{}, "", false
}
