package planner

import (
	"context"
	"fmt"
	"time"

	scheduleRepo "twinmind/database/repository/schedule"
	"twinmind/models"
	"twinmind/services/calendar"
	"twinmind/services/scheduling"
	"twinmind/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultPlannerService is the production PlannerService. The pure engine
// does the placement; this service owns the I/O around it.
type DefaultPlannerService struct {
	Engine    scheduling.Engine
	Busy      calendar.BusySource // optional: nil when no external calendar is wired
	Sink      calendar.EventSink  // optional
	Repo      scheduleRepo.ScheduleRepository
	Reminders *asynq.Client // optional
	LeadTime  time.Duration
	Logger    *zap.Logger

	// Now is the clock; overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultPlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// PlanDay gathers the busy picture, runs the engine, then persists,
// publishes and queues reminders for every placement.
func (s *DefaultPlannerService) PlanDay(ctx context.Context, taskList []models.TwinTask) (*models.ScheduleResult, error) {
	now := s.now()
	horizon := now.AddDate(0, 0, scheduling.DefaultMaxDays+1)

	busy, err := s.gatherBusy(ctx, now, horizon)
	if err != nil {
		return nil, err
	}

	events, err := s.Engine.Schedule(taskList, busy, now)
	if err != nil {
		return nil, err
	}

	for i := range events {
		id, err := s.Repo.CreateEvent(ctx, events[i])
		if err != nil {
			return nil, fmt.Errorf("failed to persist event: %w", err)
		}
		events[i].ID = id

		if s.Sink != nil {
			if err := s.Sink.CreateEvent(ctx, events[i]); err != nil {
				// The local schedule is authoritative; a calendar push
				// failure should not unwind placements already made.
				s.Logger.Warn("failed to push event to external calendar",
					zap.String("eventId", id), zap.Error(err))
			}
		}

		s.enqueueReminder(events[i], now)
	}

	return &models.ScheduleResult{
		Events:      events,
		Unscheduled: unscheduledDescriptions(taskList, events),
	}, nil
}

// Agenda lists stored events intersecting [from, to).
func (s *DefaultPlannerService) Agenda(ctx context.Context, from, to time.Time) ([]models.ScheduledEvent, error) {
	return s.Repo.ListEventsInRange(ctx, from, to)
}

// CancelEvent removes a stored event.
func (s *DefaultPlannerService) CancelEvent(ctx context.Context, id string) error {
	return s.Repo.DeleteEvent(ctx, id)
}

// gatherBusy merges external calendar commitments with placements stored
// by earlier runs.
func (s *DefaultPlannerService) gatherBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	var busy []models.BusyInterval

	if s.Busy != nil {
		external, err := s.Busy.FetchBusy(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch busy intervals: %w", err)
		}
		busy = append(busy, external...)
	}

	stored, err := s.Repo.BusyInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored events: %w", err)
	}
	busy = append(busy, stored...)
	return busy, nil
}

func (s *DefaultPlannerService) enqueueReminder(event models.ScheduledEvent, now time.Time) {
	if s.Reminders == nil {
		return
	}
	fireAt := event.Slot.Start.Add(-s.LeadTime)
	if fireAt.Before(now) {
		fireAt = now
	}
	payload := models.ReminderPayload{
		EventID:     event.ID,
		Description: event.Task.Description,
		FireDate:    fireAt.Format(time.RFC3339),
		SlotStart:   event.Slot.Start.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		s.Logger.Warn("failed to build reminder task", zap.String("eventId", event.ID), zap.Error(err))
		return
	}
	if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue reminder", zap.String("eventId", event.ID), zap.Error(err))
	}
}

// unscheduledDescriptions diffs input tasks against placements. Repeated
// descriptions are handled as a multiset.
func unscheduledDescriptions(taskList []models.TwinTask, events []models.ScheduledEvent) []string {
	placed := make(map[string]int, len(events))
	for _, ev := range events {
		placed[ev.Task.Description]++
	}
	var missing []string
	for _, t := range taskList {
		if placed[t.Description] > 0 {
			placed[t.Description]--
			continue
		}
		missing = append(missing, t.Description)
	}
	return missing
}
