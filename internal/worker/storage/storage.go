package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anyhire/anyhire-be/internal/worker/domain"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// InsertNotification persists one event as an unread notification.
// The event id doubles as the notification id, so a redelivered event
// inserts nothing. Returns whether a row was actually written.
func (s *Storage) InsertNotification(ctx context.Context, event *domain.NotificationEvent) (bool, error) {
	query := `
		INSERT INTO notifications (notification_id, user_id, message, read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		ON CONFLICT (notification_id) DO NOTHING
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		event.EventID,
		event.UserID,
		event.Message,
		event.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert notification: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if inserted == 0 {
		s.logger.Debug("Duplicate notification event skipped",
			slog.String("event_id", event.EventID),
		)
	}

	return inserted > 0, nil
}
