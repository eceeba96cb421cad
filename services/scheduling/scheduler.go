package scheduling

import (
	"sort"
	"time"

	"twinmind/models"
)

const (
	// DefaultMaxDays caps how far ahead the slot scan looks.
	DefaultMaxDays = 14
	// DefaultStepMinutes is the candidate-slot granularity within a day.
	DefaultStepMinutes = 30
	// DefaultDurationMinutes applies when a task carries no estimate.
	DefaultDurationMinutes = 60
)

// DefaultSchedulingEngine is the production implementation of Engine.
// First-fit with half-hour stepping: tasks are typically a few hours at
// most and calendars carry few busy blocks, so exhaustive stepping is
// cheap and sidesteps interval-merging machinery.
type DefaultSchedulingEngine struct {
	Hours       models.WorkingHours
	MaxDays     int
	StepMinutes int
}

// NewDefaultSchedulingEngine validates the working-hours configuration and
// returns a ready engine. Invalid hours fail fast here: with a broken
// window every task would be unschedulable, and an empty schedule would
// silently mask the setup bug.
func NewDefaultSchedulingEngine(hours models.WorkingHours) (*DefaultSchedulingEngine, error) {
	if err := ValidateWorkingHours(hours); err != nil {
		return nil, err
	}
	return &DefaultSchedulingEngine{
		Hours:       hours,
		MaxDays:     DefaultMaxDays,
		StepMinutes: DefaultStepMinutes,
	}, nil
}

// Schedule sorts tasks by priority and deadline, then places each one
// greedily. Every placed slot is appended to a privately owned copy of the
// busy-set so later tasks cannot collide with earlier placements; the
// caller's busy slice is never mutated. Once placed, a slot is never
// revisited to make room for a later task.
func (e *DefaultSchedulingEngine) Schedule(tasks []models.TwinTask, busy []models.BusyInterval, now time.Time) ([]models.ScheduledEvent, error) {
	if err := ValidateWorkingHours(e.Hours); err != nil {
		return nil, err
	}

	ordered := make([]models.TwinTask, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return taskLess(ordered[i], ordered[j])
	})

	busySet := make([]models.BusyInterval, len(busy))
	copy(busySet, busy)

	var events []models.ScheduledEvent
	for _, task := range ordered {
		dur := task.DurationMinutes
		if dur <= 0 {
			dur = DefaultDurationMinutes
		}
		slot := e.FindSlot(busySet, dur, now, task.Deadline)
		if slot == nil {
			// Infeasible within constraints; the task is simply absent from
			// the result and the caller diffs against its input to notice.
			continue
		}
		events = append(events, models.ScheduledEvent{
			Task:     task,
			Slot:     *slot,
			ColorTag: task.Priority.ColorTag(),
		})
		busySet = append(busySet, models.BusyInterval{Start: slot.Start, End: slot.End})
	}
	return events, nil
}

// taskLess orders tasks by priority rank, then deadline presence, then
// deadline time. Ties keep input order via the stable sort above.
func taskLess(a, b models.TwinTask) bool {
	ra, rb := a.Priority.Rank(), b.Priority.Rank()
	if ra != rb {
		return ra < rb
	}
	if (a.Deadline != nil) != (b.Deadline != nil) {
		return a.Deadline != nil
	}
	if a.Deadline != nil && b.Deadline != nil && !a.Deadline.Equal(*b.Deadline) {
		return a.Deadline.Before(*b.Deadline)
	}
	return false
}
