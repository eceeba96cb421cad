package models

import "time"

// ReminderPayload is the asynq task payload for a scheduled-event reminder.
type ReminderPayload struct {
	EventID     string `json:"eventId"`
	Description string `json:"description"`
	FireDate    string `json:"fireDate"`
	SlotStart   string `json:"slotStart"`
}

// Notification is a delivered reminder persisted for the owner to review.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	EventID   string    `bson:"eventId" json:"eventId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
