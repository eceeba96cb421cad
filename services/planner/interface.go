package planner

import (
	"context"
	"time"

	"twinmind/models"
)

// PlannerService wires the pure scheduling engine to its collaborators:
// busy-interval sources, the event sink, the store, and the reminder queue.
type PlannerService interface {
	// PlanDay schedules the given tasks against the owner's current busy
	// calendar, persists and publishes the placements, and reports which
	// tasks could not be placed.
	PlanDay(ctx context.Context, tasks []models.TwinTask) (*models.ScheduleResult, error)

	// Agenda lists stored events intersecting [from, to).
	Agenda(ctx context.Context, from, to time.Time) ([]models.ScheduledEvent, error)

	// CancelEvent removes a stored event.
	CancelEvent(ctx context.Context, id string) error
}
