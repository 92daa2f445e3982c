package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/model"
)

const notificationColumns = `
	notification_id, user_id, message, read, created_at
`

// ListNotifications returns one newest-first page of a user's
// notifications. A page past the end yields an empty slice, not an
// error.
func (s *Storage) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	query := `SELECT` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, notification_id DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []model.Notification
	err := s.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

func (s *Storage) CountNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

func (s *Storage) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkNotificationRead flips one notification to read, but only when
// it belongs to userID. A miss on either condition is ErrNotFound, so
// callers cannot distinguish (or mutate) other users' notifications.
func (s *Storage) MarkNotificationRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE notification_id = $1 AND user_id = $2
		RETURNING` + notificationColumns

	var notification model.Notification
	err := s.db.GetContext(ctx, &notification, query, notificationID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return &notification, nil
}

// MarkAllNotificationsRead marks every unread notification owned by
// userID as read. Idempotent; repeat calls affect zero rows.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

func (s *Storage) ClearNotifications(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear notifications: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
