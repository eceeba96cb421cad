package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"twinmind/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateEvent inserts a placed event and returns its ID.
func (r *mongoScheduleRepo) CreateEvent(ctx context.Context, event models.ScheduledEvent) (string, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if _, err := r.events.InsertOne(ctx, event); err != nil {
		return "", err
	}
	return event.ID, nil
}

// GetEventByID returns a scheduled event by its ID.
func (r *mongoScheduleRepo) GetEventByID(ctx context.Context, id string) (*models.ScheduledEvent, error) {
	var event models.ScheduledEvent
	if err := r.events.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsInRange returns events whose slot intersects [from, to),
// earliest first.
func (r *mongoScheduleRepo) ListEventsInRange(ctx context.Context, from, to time.Time) ([]models.ScheduledEvent, error) {
	filter := bson.M{
		"slot.start": bson.M{"$lt": to},
		"slot.end":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.M{"slot.start": 1})
	cursor, err := r.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.ScheduledEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteEvent removes a scheduled event by ID.
func (r *mongoScheduleRepo) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.events.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("event not found")
	}
	return nil
}

// BusyInRange projects stored events into plain busy intervals.
func (r *mongoScheduleRepo) BusyInRange(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
	events, err := r.ListEventsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	busy := make([]models.BusyInterval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, models.BusyInterval{Start: ev.Slot.Start, End: ev.Slot.End})
	}
	return busy, nil
}

// CreateNotification records a delivered reminder.
func (r *mongoScheduleRepo) CreateNotification(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := r.notifications.InsertOne(ctx, n)
	return err
}

// ListNotifications returns the most recent notifications.
func (r *mongoScheduleRepo) ListNotifications(ctx context.Context, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.notifications.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
