package happyhour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseError carries the offending input alongside ErrInvalidTimeFormat.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidTimeFormat, e.Input)
}

func (e *ParseError) Unwrap() error { return ErrInvalidTimeFormat }

// ParseTimeOfDay converts "17:00", "17:00:00", "1700", "930" or "9" into
// minutes since midnight. Seconds are checked and dropped.
func ParseTimeOfDay(s string) (int, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, &ParseError{Input: s}
	}

	var hourPart, minutePart string
	switch {
	case strings.Contains(raw, ":"):
		parts := strings.Split(raw, ":")
		if len(parts) > 3 {
			return 0, &ParseError{Input: s}
		}
		if len(parts) == 3 {
			if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
				return 0, &ParseError{Input: s}
			}
		}
		hourPart, minutePart = parts[0], parts[1]
	case len(raw) <= 2:
		hourPart, minutePart = raw, "0"
	case len(raw) == 3:
		hourPart, minutePart = raw[:1], raw[1:]
	default:
		hourPart, minutePart = raw[:2], raw[2:]
	}

	hours, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, &ParseError{Input: s}
	}
	minutes, err := strconv.Atoi(minutePart)
	if err != nil {
		return 0, &ParseError{Input: s}
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, &ParseError{Input: s}
	}
	if hours == 24 && minutes != 0 {
		return 0, &ParseError{Input: s}
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as "HH:MM". A full day is
// "24:00" so an end of midnight reads as the close of the day.
func FormatClock(minutes int) string {
	if minutes == minutesPerDay {
		return "24:00"
	}
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func minuteOfDay(h, m int) int {
	return h*60 + m
}
