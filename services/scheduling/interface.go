package scheduling

import (
	"time"

	"twinmind/models"
)

// Engine places tasks into free calendar slots. Implementations are pure:
// no I/O, no clock reads; callers supply the busy intervals and "now".
type Engine interface {
	// FindSlot returns the earliest feasible slot of the given duration, or
	// nil when nothing fits within the look-ahead window or the deadline.
	// A nil result is not an error; it means "could not schedule within
	// constraints" and the caller decides what to do with the task.
	FindSlot(busy []models.BusyInterval, durationMinutes int, earliestStart time.Time, deadline *time.Time) *models.Slot

	// Schedule orders tasks and places them greedily without mutual
	// conflicts. Tasks that cannot be placed are omitted from the result.
	Schedule(tasks []models.TwinTask, busy []models.BusyInterval, now time.Time) ([]models.ScheduledEvent, error)
}
