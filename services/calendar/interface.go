package calendar

import (
	"context"
	"time"

	"twinmind/models"
)

// BusySource yields the owner's existing commitments for a date range.
// Implementations must return intervals in the same clock as the caller's
// "now".
type BusySource interface {
	FetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)
}

// EventSink persists a placed event on an external calendar.
type EventSink interface {
	CreateEvent(ctx context.Context, event models.ScheduledEvent) error
}
