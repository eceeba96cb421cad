package planner

import (
	"context"
	"testing"
	"time"

	"twinmind/models"
	"twinmind/services/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryRepo struct {
	events        []models.ScheduledEvent
	notifications []models.Notification
}

func (r *memoryRepo) CreateEvent(ctx context.Context, event models.ScheduledEvent) (string, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	r.events = append(r.events, event)
	return event.ID, nil
}

func (r *memoryRepo) GetEventByID(ctx context.Context, id string) (*models.ScheduledEvent, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			return &r.events[i], nil
		}
	}
	return nil, context.Canceled
}

func (r *memoryRepo) ListEventsInRange(ctx context.Context, from, to time.Time) ([]models.ScheduledEvent, error) {
	var out []models.ScheduledEvent
	for _, ev := range r.events {
		if ev.Slot.Start.Before(to) && ev.Slot.End.After(from) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *memoryRepo) DeleteEvent(ctx context.Context, id string) error {
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return context.Canceled
}

func (r *memoryRepo) BusyInRange(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	events, _ := r.ListEventsInRange(ctx, from, to)
	var busy []models.BusyInterval
	for _, ev := range events {
		busy = append(busy, models.BusyInterval{Start: ev.Slot.Start, End: ev.Slot.End})
	}
	return busy, nil
}

func (r *memoryRepo) CreateNotification(ctx context.Context, n models.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *memoryRepo) ListNotifications(ctx context.Context, limit int64) ([]models.Notification, error) {
	return r.notifications, nil
}

type staticBusySource struct {
	intervals []models.BusyInterval
}

func (s *staticBusySource) FetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	return s.intervals, nil
}

func testHours() models.WorkingHours {
	return models.WorkingHours{
		StartHour: 9,
		EndHour:   17,
		WorkDays: map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true,
		},
	}
}

func newTestPlanner(t *testing.T, repo *memoryRepo, busy []models.BusyInterval, now time.Time) *DefaultPlannerService {
	t.Helper()
	engine, err := scheduling.NewDefaultSchedulingEngine(testHours())
	if err != nil {
		t.Fatalf("NewDefaultSchedulingEngine: %v", err)
	}
	return &DefaultPlannerService{
		Engine: engine,
		Busy:   &staticBusySource{intervals: busy},
		Repo:   repo,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return now },
	}
}

func TestPlanDay_PersistsAndReportsUnscheduled(t *testing.T) {
	monday := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.Local)
	repo := &memoryRepo{}
	p := newTestPlanner(t, repo, nil, monday)

	deadline := monday.Add(30 * time.Minute) // 08:30, impossible for any slot
	result, err := p.PlanDay(context.Background(), []models.TwinTask{
		{Description: "write report", Priority: models.PriorityHigh},
		{Description: "impossible", Priority: models.PriorityHigh, Deadline: &deadline},
	})
	if err != nil {
		t.Fatalf("PlanDay: %v", err)
	}

	if len(result.Events) != 1 {
		t.Fatalf("placed %d events, want 1", len(result.Events))
	}
	if result.Events[0].ID == "" {
		t.Error("persisted event has no ID")
	}
	if len(repo.events) != 1 {
		t.Errorf("repo holds %d events, want 1", len(repo.events))
	}
	if len(result.Unscheduled) != 1 || result.Unscheduled[0] != "impossible" {
		t.Errorf("unscheduled = %v, want [impossible]", result.Unscheduled)
	}
}

func TestPlanDay_SecondRunSeesFirstRunsPlacements(t *testing.T) {
	monday := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.Local)
	repo := &memoryRepo{}
	p := newTestPlanner(t, repo, nil, monday)

	first, err := p.PlanDay(context.Background(), []models.TwinTask{
		{Description: "a", Priority: models.PriorityHigh},
	})
	if err != nil {
		t.Fatalf("first PlanDay: %v", err)
	}
	second, err := p.PlanDay(context.Background(), []models.TwinTask{
		{Description: "b", Priority: models.PriorityHigh},
	})
	if err != nil {
		t.Fatalf("second PlanDay: %v", err)
	}

	a, b := first.Events[0].Slot, second.Events[0].Slot
	if a.Start.Before(b.End) && b.Start.Before(a.End) {
		t.Errorf("second run double-booked the first run's slot: [%v, %v] vs [%v, %v]",
			a.Start, a.End, b.Start, b.End)
	}
}

func TestPlanDay_RespectsExternalBusy(t *testing.T) {
	monday := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.Local)
	dayStart := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
	busy := []models.BusyInterval{{Start: dayStart, End: dayStart.Add(2 * time.Hour)}}
	repo := &memoryRepo{}
	p := newTestPlanner(t, repo, busy, monday)

	result, err := p.PlanDay(context.Background(), []models.TwinTask{
		{Description: "a", Priority: models.PriorityHigh},
	})
	if err != nil {
		t.Fatalf("PlanDay: %v", err)
	}
	got := result.Events[0].Slot.Start
	if got.Before(dayStart.Add(2 * time.Hour)) {
		t.Errorf("event starts at %v, inside the external busy block", got)
	}
}
