package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// AlertHandler processes one alert event (email, push, webhook delivery).
type AlertHandler func(ctx context.Context, event *AlertEvent) error

// Consumer consumes alert events from the queue
type Consumer struct {
	conn       *Connection
	handler    AlertHandler
	workers    int
	prefetch   int
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// ConsumerConfig holds consumer configuration
type ConsumerConfig struct {
	Workers  int // Number of concurrent workers
	Prefetch int // Prefetch count per worker
}

// DefaultConsumerConfig returns sensible defaults
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Workers:  2,
		Prefetch: 1, // Process one at a time per worker for fairness
	}
}

// NewConsumer creates a new alert consumer
func NewConsumer(conn *Connection, handler AlertHandler, cfg ConsumerConfig) *Consumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}

	return &Consumer{
		conn:     conn,
		handler:  handler,
		workers:  cfg.Workers,
		prefetch: cfg.Prefetch,
	}
}

// Start begins consuming messages
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancelFunc = context.WithCancel(ctx)

	ch := c.conn.Channel()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		AlertQueueName,
		"",    // consumer tag (auto-generated)
		false, // auto-ack (manual ack for reliability)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	slog.Info("starting alert queue consumer", "workers", c.workers, "prefetch", c.prefetch)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(id int) {
			defer c.wg.Done()

			for {
				select {
				case <-ctx.Done():
					slog.Info("worker stopping", "worker_id", id)
					return

				case msg, ok := <-msgs:
					if !ok {
						slog.Info("message channel closed", "worker_id", id)
						return
					}

					var event AlertEvent
					if err := json.Unmarshal(msg.Body, &event); err != nil {
						slog.Error("failed to unmarshal alert event",
							"worker_id", id,
							"error", err,
						)
						// Reject without requeue for malformed messages
						_ = msg.Reject(false)
						continue
					}

					if err := c.handler(ctx, &event); err != nil {
						slog.Error("alert delivery failed",
							"worker_id", id,
							"alert_id", event.ID,
							"error", err,
						)
						// Requeue once; the TTL bounds how long it can churn
						_ = msg.Reject(!msg.Redelivered)
						continue
					}

					if err := msg.Ack(false); err != nil {
						slog.Error("failed to ack alert event",
							"worker_id", id,
							"alert_id", event.ID,
							"error", err,
						)
					}
				}
			}
		}(i)
	}

	return nil
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
	slog.Info("alert consumer stopped")
}

// LogHandler returns an AlertHandler that just logs deliveries. It stands
// in until a real notification channel (email, push) is wired up.
func LogHandler(logger *slog.Logger) AlertHandler {
	return func(ctx context.Context, event *AlertEvent) error {
		logger.Info("alert notification",
			"alert_id", event.ID,
			"user_id", event.UserID,
			"type", event.Type,
			"message", event.Message,
		)
		return nil
	}
}
