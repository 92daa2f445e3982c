package model

import "time"

// JobStatus tracks one user's application state for a job.
type JobStatus struct {
	StatusID  string    `db:"status_id" json:"status_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Category  string    `db:"category" json:"category"`
	Title     string    `db:"title" json:"title"`
	JobType   string    `db:"job_type" json:"job_type"`
	Payment   float64   `db:"payment" json:"payment"`
	Deadline  time.Time `db:"deadline" json:"deadline"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Notification is a per-user message with a read/unread flag.
type Notification struct {
	NotificationID string    `db:"notification_id" json:"notification_id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Message        string    `db:"message" json:"message"`
	Read           bool      `db:"read" json:"read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
