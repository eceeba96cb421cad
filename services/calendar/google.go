package calendar

import (
	"context"
	"fmt"
	"time"

	"twinmind/models"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Google Calendar color IDs for the engine's priority tags.
var colorIDs = map[string]string{
	"red":    "11",
	"yellow": "5",
	"blue":   "9",
}

// GoogleCalendarClient is both a BusySource and an EventSink backed by the
// owner's Google Calendar.
type GoogleCalendarClient struct {
	svc        *gcal.Service
	calendarID string
	logger     *zap.Logger
}

func NewGoogleCalendarClient(ctx context.Context, credentialsFile, calendarID string, logger *zap.Logger) (*GoogleCalendarClient, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarClient{
		svc:        svc,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// FetchBusy lists events in [from, to) and flattens them into busy
// intervals. All-day events block their whole day.
func (g *GoogleCalendarClient) FetchBusy(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	call := g.svc.Events.List(g.calendarID).
		Context(ctx).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	var busy []models.BusyInterval
	if err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			if item.Start == nil || item.End == nil {
				continue
			}
			start, end, err := eventTimes(item)
			if err != nil {
				g.logger.Warn("skipping calendar event with unparseable times",
					zap.String("event", item.Id), zap.Error(err))
				continue
			}
			busy = append(busy, models.BusyInterval{Start: start, End: end})
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return busy, nil
}

// CreateEvent inserts a placed event with the color derived from the
// task's priority.
func (g *GoogleCalendarClient) CreateEvent(ctx context.Context, event models.ScheduledEvent) error {
	gev := &gcal.Event{
		Summary:     event.Task.Description,
		Description: fmt.Sprintf("Scheduled by twinmind (priority: %s)", event.Task.Priority),
		ColorId:     colorIDs[event.ColorTag],
		Start:       &gcal.EventDateTime{DateTime: event.Slot.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: event.Slot.End.Format(time.RFC3339)},
	}
	if _, err := g.svc.Events.Insert(g.calendarID, gev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	g.logger.Info("calendar event created",
		zap.String("summary", gev.Summary),
		zap.Time("start", event.Slot.Start))
	return nil
}

// eventTimes extracts start and end, handling both timed and all-day
// events.
func eventTimes(item *gcal.Event) (time.Time, time.Time, error) {
	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start.Local(), end.Local(), nil
	}
	// All-day event: Date is a bare YYYY-MM-DD.
	start, err := time.ParseInLocation("2006-01-02", item.Start.Date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", item.End.Date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
