package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anyhire/anyhire-be/internal/worker/storage"
	"github.com/anyhire/anyhire-be/shared/postgresql"
	"github.com/anyhire/anyhire-be/shared/rabbitmq"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// Worker consumes notification events from RabbitMQ and persists them
// as notification rows.
type Worker struct {
	logger        *slog.Logger
	storage       *storage.Storage
	rabbitClient  *rabbitmq.Client
	concurrency   int
	prefetchCount int
	workerID      string
	deliveries    chan amqp.Delivery
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		workerID:      "notification-worker-" + uuid.New().String()[:8],
		deliveries:    make(chan amqp.Delivery),
		stopChan:      make(chan struct{}),
	}
}

// Start consumes events until the context is canceled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	w.spawnPool(ctx)
	go w.dispatch(ctx, deliveries)

	<-ctx.Done()
	w.logger.Info("Worker context canceled, stopping...")

	return nil
}

// Stop gracefully stops the worker pool
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}

// setupConsumer applies QoS and starts consuming from the queue
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := w.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch keeps unacked messages bounded by the pool
	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	return deliveries, nil
}

// dispatch forwards broker deliveries to the pool
func (w *Worker) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			select {
			case w.deliveries <- delivery:
			case <-ctx.Done():
				// Requeue so another consumer picks it up after shutdown
				if err := delivery.Nack(false, true); err != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", err.Error()),
					)
				}
				return
			}
		}
	}
}

// spawnPool starts N goroutines processing dispatched deliveries
func (w *Worker) spawnPool(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.poolLoop(ctx, i)
	}

	w.logger.Info("Worker pool spawned",
		slog.Int("worker_count", w.concurrency),
	)
}

func (w *Worker) poolLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)

	for {
		select {
		case <-w.stopChan:
			return

		case <-ctx.Done():
			return

		case delivery, ok := <-w.deliveries:
			if !ok {
				return
			}

			err := w.processDelivery(ctx, delivery)
			if err != nil {
				requeue := shouldRequeue(err)
				w.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.Bool("requeue", requeue),
					slog.String("error", err.Error()),
				)

				if nackErr := delivery.Nack(false, requeue); nackErr != nil {
					w.logger.Error("Failed to NACK message",
						slog.String("worker_name", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := delivery.Ack(false); ackErr != nil {
				w.logger.Error("Failed to ACK message",
					slog.String("worker_name", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}
