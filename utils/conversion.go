package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"twinmind/models"
)

// ParseDeadline accepts the deadline formats task sources send us:
// RFC 3339, a bare ISO date, or a slash date. Ambiguous slash dates are
// always read day-first (25/03/2026 and 03/04/2026 both take the first
// number as the day), regardless of locale.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty deadline")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	// Day-first slash dates, with and without year.
	if t, err := time.ParseInLocation("02/01/2006 15:04", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01", raw, time.Local); err == nil {
		return time.Date(time.Now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized deadline format: %q", raw)
}

// ParseWorkDays converts a comma-separated list of weekday numbers
// (0=Sunday .. 6=Saturday) into a weekday set.
func ParseWorkDays(raw string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid work day %q", part)
		}
		days[time.Weekday(n)] = true
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no work days in %q", raw)
	}
	return days, nil
}

// WorkingHoursFromConfig assembles the scheduling window from raw config
// values.
func WorkingHoursFromConfig(startHour, endHour int, workDays string) (models.WorkingHours, error) {
	days, err := ParseWorkDays(workDays)
	if err != nil {
		return models.WorkingHours{}, err
	}
	return models.WorkingHours{
		StartHour: startHour,
		EndHour:   endHour,
		WorkDays:  days,
	}, nil
}
