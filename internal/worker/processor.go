package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anyhire/anyhire-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// processDelivery parses, validates and persists one notification
// event. Invalid events return ErrInvalidEvent; transient storage
// failures come back wrapped as RetryableError.
func (w *Worker) processDelivery(ctx context.Context, delivery amqp.Delivery) error {
	event, err := parseEvent(delivery.Body)
	if err != nil {
		return err
	}

	inserted, err := w.storage.InsertNotification(ctx, event)
	if err != nil {
		// The store was reachable enough to accept the connection but
		// the write failed; give the broker a chance to redeliver.
		return domain.NewRetryableError(err)
	}

	if inserted {
		w.logger.Info("Notification created",
			slog.String("event_id", event.EventID),
			slog.String("user_id", event.UserID),
		)
	}

	return nil
}

// parseEvent decodes and validates an event body.
func parseEvent(body []byte) (*domain.NotificationEvent, error) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", domain.ErrInvalidEvent, err)
	}

	if event.EventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", domain.ErrInvalidEvent)
	}
	if event.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidEvent)
	}
	if event.Message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidEvent)
	}
	if event.OccurredAt.IsZero() {
		return nil, fmt.Errorf("%w: occurred_at is required", domain.ErrInvalidEvent)
	}

	return &event, nil
}

// shouldRequeue reports whether a processing failure is worth a
// redelivery. Invalid events never are; transient errors are.
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidEvent) {
		return false
	}

	var retryable *domain.RetryableError
	return errors.As(err, &retryable)
}
