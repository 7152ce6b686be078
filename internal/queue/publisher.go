package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pathwayhq/pathway/internal/domain"
)

// Publisher publishes alert events to the queue. A Publisher with a nil
// connection is valid and drops events, so alert publishing stays optional.
type Publisher struct {
	conn *Connection
}

// NewPublisher creates a new alert publisher. conn may be nil.
func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Enabled reports whether events will actually be published.
func (p *Publisher) Enabled() bool {
	return p != nil && p.conn != nil
}

// PublishAlert publishes an alert event. Callers treat failures as
// best-effort: log and move on, never fail the originating request.
func (p *Publisher) PublishAlert(ctx context.Context, alert domain.Alert) error {
	if !p.Enabled() {
		return nil
	}

	event := AlertEvent{
		ID:        alert.ID,
		UserID:    alert.UserID,
		Type:      string(alert.Type),
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	}

	if err := p.conn.PublishJSON(ctx, AlertQueueName, event); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}

	slog.Info("published alert event",
		"alert_id", alert.ID,
		"user_id", alert.UserID,
		"type", alert.Type,
	)

	return nil
}
