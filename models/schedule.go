package models

import "time"

// Priority ranks a task for placement order.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort rank (high first). Unknown values rank
// as medium so the ordering stays total.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// ColorTag returns the calendar color for events of this priority.
func (p Priority) ColorTag() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "yellow"
	default:
		return "blue"
	}
}

// BusyInterval is a half-open time range [Start, End) during which the
// owner's calendar is already committed.
type BusyInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether the two half-open intervals intersect.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// TwinTask is one unit of the owner's to-do list handed to the scheduling
// engine. Deadline is optional; DurationMinutes defaults to 60 when absent.
type TwinTask struct {
	Description     string     `bson:"description" json:"description"`
	Priority        Priority   `bson:"priority" json:"priority"`
	Deadline        *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	DurationMinutes int        `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
}

// WorkingHours is the daily window and set of weekdays during which
// placement is permitted. Constant for one scheduling run.
type WorkingHours struct {
	StartHour int                   `json:"startHour"`
	EndHour   int                   `json:"endHour"`
	WorkDays  map[time.Weekday]bool `json:"workDays"`
}

// Slot is a candidate or confirmed free time range for a task.
type Slot struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// ScheduledEvent is the output of one successful placement. Never mutated
// after creation.
type ScheduledEvent struct {
	ID       string   `bson:"id,omitempty" json:"id,omitempty"`
	Task     TwinTask `bson:"task" json:"task"`
	Slot     Slot     `bson:"slot" json:"slot"`
	ColorTag string   `bson:"colorTag" json:"colorTag"`
}

// ScheduleResult is what the planner returns to the caller: the placed
// events plus the descriptions of tasks that could not be placed.
type ScheduleResult struct {
	Events      []ScheduledEvent `json:"events"`
	Unscheduled []string         `json:"unscheduled,omitempty"`
}
