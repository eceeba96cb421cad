package scheduleRepo

import (
	"context"

	"twinmind/config"
	"twinmind/database"
	"twinmind/models"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository persists placed events and delivered reminders.
type ScheduleRepository interface {
	CreateEvent(ctx context.Context, event models.ScheduledEvent) (string, error)
	GetEventByID(ctx context.Context, id string) (*models.ScheduledEvent, error)
	ListEventsInRange(ctx context.Context, from, to time.Time) ([]models.ScheduledEvent, error)
	DeleteEvent(ctx context.Context, id string) error

	// BusyInRange projects stored events into busy intervals so a new
	// scheduling run sees earlier runs' placements.
	BusyInRange(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)

	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, limit int64) ([]models.Notification, error)
}

type mongoScheduleRepo struct {
	events        *mongo.Collection
	notifications *mongo.Collection
}

// NewMongoScheduleRepo returns a ScheduleRepository backed by MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoScheduleRepo{
		events:        db.Collection("scheduled_events"),
		notifications: db.Collection("notifications"),
	}
}
