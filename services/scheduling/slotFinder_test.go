package scheduling

import (
	"testing"
	"time"

	"twinmind/models"
)

// monday is a fixed reference Monday at midnight local time.
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)

func weekdayHours(t *testing.T) models.WorkingHours {
	t.Helper()
	return models.WorkingHours{
		StartHour: 9,
		EndHour:   17,
		WorkDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
	}
}

func newTestEngine(t *testing.T) *DefaultSchedulingEngine {
	t.Helper()
	e, err := NewDefaultSchedulingEngine(weekdayHours(t))
	if err != nil {
		t.Fatalf("NewDefaultSchedulingEngine: %v", err)
	}
	return e
}

func at(base time.Time, day, hour, min int) time.Time {
	return base.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestFindSlot_EmptyCalendar(t *testing.T) {
	e := newTestEngine(t)

	// Monday 08:00, one-hour task: first slot is Monday 09:00-10:00.
	slot := e.FindSlot(nil, 60, at(monday, 0, 8, 0), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 0, 9, 0)) || !slot.End.Equal(at(monday, 0, 10, 0)) {
		t.Errorf("got [%v, %v], want Monday 09:00-10:00", slot.Start, slot.End)
	}
}

func TestFindSlot_MidHourCursorAlignment(t *testing.T) {
	e := newTestEngine(t)

	// Wednesday 14:20: first candidate is 15:00, not 14:20 or 14:30.
	slot := e.FindSlot(nil, 60, at(monday, 2, 14, 20), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 2, 15, 0)) {
		t.Errorf("got start %v, want Wednesday 15:00", slot.Start)
	}
}

func TestFindSlot_SkipsFullyBookedDay(t *testing.T) {
	e := newTestEngine(t)

	busy := []models.BusyInterval{
		{Start: at(monday, 0, 9, 0), End: at(monday, 0, 17, 0)},
	}
	slot := e.FindSlot(busy, 60, at(monday, 0, 8, 0), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 1, 9, 0)) || !slot.End.Equal(at(monday, 1, 10, 0)) {
		t.Errorf("got [%v, %v], want Tuesday 09:00-10:00", slot.Start, slot.End)
	}
}

func TestFindSlot_DeadlineExhausted(t *testing.T) {
	e := newTestEngine(t)

	deadline := at(monday, 0, 9, 30)
	slot := e.FindSlot(nil, 60, at(monday, 0, 9, 0), &deadline)
	if slot != nil {
		t.Errorf("expected nil for exhausted deadline, got [%v, %v]", slot.Start, slot.End)
	}
}

func TestFindSlot_DeadlineRespected(t *testing.T) {
	e := newTestEngine(t)

	deadline := at(monday, 0, 12, 0)
	busy := []models.BusyInterval{
		{Start: at(monday, 0, 9, 0), End: at(monday, 0, 10, 30)},
	}
	slot := e.FindSlot(busy, 60, at(monday, 0, 8, 0), &deadline)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if slot.End.After(deadline) {
		t.Errorf("slot end %v past deadline %v", slot.End, deadline)
	}
	if !slot.Start.Equal(at(monday, 0, 10, 30)) {
		t.Errorf("got start %v, want Monday 10:30", slot.Start)
	}
}

func TestFindSlot_SkipsWeekend(t *testing.T) {
	e := newTestEngine(t)

	// Friday 16:30: too late for a one-hour slot that day, and the weekend
	// is not in the work days, so the slot lands on the next Monday.
	slot := e.FindSlot(nil, 60, at(monday, 4, 16, 30), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 7, 9, 0)) {
		t.Errorf("got start %v (%v), want next Monday 09:00", slot.Start, slot.Start.Weekday())
	}
}

func TestFindSlot_StepsOverBusyBlocks(t *testing.T) {
	e := newTestEngine(t)

	busy := []models.BusyInterval{
		{Start: at(monday, 0, 9, 0), End: at(monday, 0, 10, 0)},
		{Start: at(monday, 0, 10, 30), End: at(monday, 0, 11, 0)},
	}
	slot := e.FindSlot(busy, 60, at(monday, 0, 8, 0), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	// 09:00 collides, 10:00 collides with the 10:30 block, 11:00 is free.
	if !slot.Start.Equal(at(monday, 0, 11, 0)) {
		t.Errorf("got start %v, want Monday 11:00", slot.Start)
	}
}

func TestFindSlot_BackToBackTouchingIsFree(t *testing.T) {
	e := newTestEngine(t)

	// Half-open intervals: a slot may start exactly where a busy block ends.
	busy := []models.BusyInterval{
		{Start: at(monday, 0, 9, 0), End: at(monday, 0, 10, 0)},
	}
	slot := e.FindSlot(busy, 60, at(monday, 0, 8, 0), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 0, 10, 0)) {
		t.Errorf("got start %v, want Monday 10:00", slot.Start)
	}
}

func TestFindSlot_FitsExactlyToDayEnd(t *testing.T) {
	e := newTestEngine(t)

	// A slot ending exactly at endHour is valid.
	slot := e.FindSlot(nil, 60, at(monday, 0, 15, 20), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if !slot.Start.Equal(at(monday, 0, 16, 0)) || !slot.End.Equal(at(monday, 0, 17, 0)) {
		t.Errorf("got [%v, %v], want Monday 16:00-17:00", slot.Start, slot.End)
	}
}

func TestFindSlot_Deterministic(t *testing.T) {
	e := newTestEngine(t)

	busy := []models.BusyInterval{
		{Start: at(monday, 0, 9, 0), End: at(monday, 0, 11, 0)},
		{Start: at(monday, 0, 13, 0), End: at(monday, 0, 14, 0)},
	}
	first := e.FindSlot(busy, 90, at(monday, 0, 8, 0), nil)
	second := e.FindSlot(busy, 90, at(monday, 0, 8, 0), nil)
	if first == nil || second == nil {
		t.Fatal("expected slots, got nil")
	}
	if !first.Start.Equal(second.Start) || !first.End.Equal(second.End) {
		t.Errorf("same input produced different slots: [%v, %v] vs [%v, %v]",
			first.Start, first.End, second.Start, second.End)
	}
}

func TestFindSlot_NothingWithinLookahead(t *testing.T) {
	e := newTestEngine(t)

	// Book out every working hour of the whole look-ahead window.
	var busy []models.BusyInterval
	for day := 0; day <= e.MaxDays; day++ {
		busy = append(busy, models.BusyInterval{
			Start: at(monday, day, 9, 0),
			End:   at(monday, day, 17, 0),
		})
	}
	slot := e.FindSlot(busy, 60, at(monday, 0, 8, 0), nil)
	if slot != nil {
		t.Errorf("expected nil with a fully booked window, got [%v, %v]", slot.Start, slot.End)
	}
}

func TestFindSlot_DefaultDuration(t *testing.T) {
	e := newTestEngine(t)

	slot := e.FindSlot(nil, 0, at(monday, 0, 8, 0), nil)
	if slot == nil {
		t.Fatal("expected a slot, got nil")
	}
	if got := slot.End.Sub(slot.Start); got != time.Hour {
		t.Errorf("default duration = %v, want 1h", got)
	}
}
