package scheduling

import (
	"time"

	"twinmind/models"
)

// FindSlot walks forward from earliestStart in fixed increments and returns
// the first slot of durationMinutes that fits inside working hours on a
// workday without touching any busy interval. First-fit, not best-fit: the
// scan accepts the earliest feasible candidate immediately.
func (e *DefaultSchedulingEngine) FindSlot(busy []models.BusyInterval, durationMinutes int, earliestStart time.Time, deadline *time.Time) *models.Slot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(e.StepMinutes) * time.Minute

	cursor := e.alignCursor(earliestStart)

	for day := 0; day < e.MaxDays; day++ {
		if deadline != nil && !cursor.Before(*deadline) {
			return nil
		}

		if !e.Hours.WorkDays[cursor.Weekday()] {
			cursor = e.nextDayStart(cursor)
			continue
		}

		dayStart := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), e.Hours.StartHour, 0, 0, 0, cursor.Location())
		dayEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), e.Hours.EndHour, 0, 0, 0, cursor.Location())
		if cursor.Before(dayStart) {
			cursor = dayStart
		}

		for {
			if deadline != nil && !cursor.Before(*deadline) {
				return nil
			}
			slotEnd := cursor.Add(duration)
			if slotEnd.After(dayEnd) {
				// Day exhausted; the remainder cannot hold the task.
				break
			}
			// Candidates only move later in time, so the first one past the
			// deadline means nothing after it can fit either.
			if deadline != nil && slotEnd.After(*deadline) {
				return nil
			}
			if !overlapsAny(busy, cursor, slotEnd) {
				return &models.Slot{Start: cursor, End: slotEnd}
			}
			cursor = cursor.Add(step)
		}

		cursor = e.nextDayStart(cursor)
	}

	return nil
}

// alignCursor clamps the cursor's time-of-day to the working-hours start.
// When earliestStart already falls at or past the start hour, the cursor
// advances to the start of the next full hour, so suggested events begin
// on the hour rather than mid-way through the current one (14:20 with a
// 9-o'clock start hour yields 15:00, not 14:30).
func (e *DefaultSchedulingEngine) alignCursor(earliestStart time.Time) time.Time {
	y, m, d := earliestStart.Date()
	loc := earliestStart.Location()
	if earliestStart.Hour() >= e.Hours.StartHour {
		return time.Date(y, m, d, earliestStart.Hour()+1, 0, 0, 0, loc)
	}
	return time.Date(y, m, d, e.Hours.StartHour, 0, 0, 0, loc)
}

// nextDayStart returns the working-hours start of the day after cursor.
func (e *DefaultSchedulingEngine) nextDayStart(cursor time.Time) time.Time {
	y, m, d := cursor.Date()
	return time.Date(y, m, d+1, e.Hours.StartHour, 0, 0, 0, cursor.Location())
}

// overlapsAny applies the half-open overlap test against every busy
// interval: [start, end) collides with [b.Start, b.End) when
// start < b.End && end > b.Start.
func overlapsAny(busy []models.BusyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
