package domain

import "time"

// NotificationEvent is the message published when something on the
// platform needs to surface a notification to a user. The event id is
// reused as the notification id, which makes redelivered events
// idempotent inserts.
type NotificationEvent struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
