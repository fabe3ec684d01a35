package happyhour

import (
	"fmt"
	"sort"
	"time"
)

// Schedule is the part of a deal that decides when it runs.
type Schedule struct {
	ValidDays string `json:"valid_days"`
	StartTime string `json:"hh_start_time"`
	EndTime   string `json:"hh_end_time"`
}

// Window returns the parsed start and end in minutes since midnight.
func (s Schedule) Window() (start, end int, err error) {
	start, err = ParseTimeOfDay(s.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	end, err = ParseTimeOfDay(s.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	return start, end, nil
}

// Evaluate reports whether the schedule is running at now. Parse errors are
// returned instead of being folded into false.
func Evaluate(s Schedule, now time.Time) (bool, error) {
	start, end, err := s.Window()
	if err != nil {
		return false, err
	}
	if !IsDayValid(s.ValidDays, now) {
		return false, nil
	}
	return inWindow(start, end, minuteOfDay(now.Hour(), now.Minute())), nil
}

// IsActive is Evaluate with malformed times treated as never active.
func IsActive(s Schedule, now time.Time) bool {
	active, err := Evaluate(s, now)
	if err != nil {
		return false
	}
	return active
}

func inWindow(start, end, current int) bool {
	if start <= end {
		return current >= start && current <= end
	}
	// crosses midnight, e.g. 22:00-02:00
	return current >= start || current <= end
}

// NextStart returns the first opening of the window strictly after now,
// looking at most a week ahead.
func NextStart(s Schedule, now time.Time) (time.Time, bool) {
	start, _, err := s.Window()
	if err != nil {
		return time.Time{}, false
	}

	y, m, d := now.Date()
	for offset := 0; offset <= 7; offset++ {
		candidate := time.Date(y, m, d+offset, start/60, start%60, 0, 0, now.Location())
		if !candidate.After(now) {
			continue
		}
		if IsDayValid(s.ValidDays, candidate) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// DaySummary is the status of a venue (or any list of deals) for the
// calendar day of now.
type DaySummary struct {
	IsActive          bool   `json:"isActive"`
	StartTime         string `json:"startTime,omitempty"`
	EndTime           string `json:"endTime,omitempty"`
	HasHappyHourToday bool   `json:"hasHappyHourToday"`
}

type parsedWindow struct {
	start, end int
	active     bool
}

// Summarize folds a set of schedules into today's status. When something is
// running, EndTime is the latest end among the running schedules. Otherwise
// StartTime is the earliest start among today's schedules.
func Summarize(schedules []Schedule, now time.Time) DaySummary {
	current := minuteOfDay(now.Hour(), now.Minute())

	var today []parsedWindow
	for _, s := range schedules {
		if !IsDayValid(s.ValidDays, now) {
			continue
		}
		start, end, err := s.Window()
		if err != nil {
			continue
		}
		today = append(today, parsedWindow{
			start:  start,
			end:    end,
			active: inWindow(start, end, current),
		})
	}

	summary := DaySummary{HasHappyHourToday: len(today) > 0}
	if len(today) == 0 {
		return summary
	}

	var active []parsedWindow
	for _, w := range today {
		if w.active {
			active = append(active, w)
		}
	}

	if len(active) > 0 {
		sort.SliceStable(active, func(i, j int) bool { return active[i].end < active[j].end })
		summary.IsActive = true
		summary.EndTime = FormatClock(active[len(active)-1].end)
		return summary
	}

	sort.SliceStable(today, func(i, j int) bool { return today[i].start < today[j].start })
	summary.StartTime = FormatClock(today[0].start)
	return summary
}
