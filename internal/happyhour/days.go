package happyhour

import (
	"strings"
	"time"
)

var dayNames = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// dayIndex maps a day token to Sun=0..Sat=6 by its first three letters, so
// "Mon", "monday", "Tues" and "THURS" all resolve. Returns -1 for anything else.
func dayIndex(token string) int {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) < 3 {
		return -1
	}
	for _, r := range token {
		if r < 'a' || r > 'z' {
			return -1
		}
	}
	for i, name := range dayNames {
		if token[:3] == name {
			return i
		}
	}
	return -1
}

// IsDayValid reports whether a valid_days spec covers the calendar day of now.
func IsDayValid(validDays string, now time.Time) bool {
	spec := strings.TrimSpace(validDays)
	lower := strings.ToLower(spec)
	today := int(now.Weekday())

	switch lower {
	case "daily", "all days":
		return true
	case "weekends":
		return today == int(time.Saturday) || today == int(time.Sunday)
	case "weekdays":
		return today != int(time.Saturday) && today != int(time.Sunday)
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		start, end := dayIndex(parts[0]), dayIndex(parts[1])
		if start < 0 || end < 0 {
			return false
		}
		if start <= end {
			return today >= start && today <= end
		}
		// wraps past Saturday, e.g. Fri-Sun
		return today >= start || today <= end
	}

	if strings.Contains(spec, ",") {
		for _, token := range strings.Split(spec, ",") {
			if dayIndex(token) == today {
				return true
			}
		}
		return false
	}

	return dayIndex(spec) == today
}
