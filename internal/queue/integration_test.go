//go:build integration

package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathwayhq/pathway/internal/domain"
	"github.com/pathwayhq/pathway/internal/queue"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// setupRabbitMQ creates a RabbitMQ container for testing
func setupRabbitMQ(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12-management")
	if err != nil {
		t.Fatalf("failed to start RabbitMQ container: %v", err)
	}

	amqpURL, err := container.AmqpURL(ctx)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("failed to get AMQP URL: %v", err)
	}

	cleanup := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return amqpURL, cleanup
}

func TestIntegration_Connection_ConnectAndClose(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("failed to create connection: %v", err)
	}

	if !conn.IsConnected() {
		t.Error("expected connection to be active")
	}

	if err := conn.Close(); err != nil {
		t.Errorf("failed to close connection: %v", err)
	}
}

func TestIntegration_Connection_InvalidURL(t *testing.T) {
	_, err := queue.NewConnection("amqp://invalid:5672")
	if err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestIntegration_Publisher_PublishAlert(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("failed to create connection: %v", err)
	}
	defer conn.Close()

	publisher := queue.NewPublisher(conn)
	if !publisher.Enabled() {
		t.Fatal("publisher should be enabled with a live connection")
	}

	alert := domain.NewAlert("user-1", domain.AlertModuleCompleted, "Congratulations! You completed Go Basics")

	if err := publisher.PublishAlert(context.Background(), alert); err != nil {
		t.Fatalf("failed to publish alert: %v", err)
	}

	// Verify by checking queue has a message
	ch := conn.Channel()
	q, err := ch.QueueInspect(queue.AlertQueueName)
	if err != nil {
		t.Fatalf("failed to inspect queue: %v", err)
	}

	if q.Messages != 1 {
		t.Errorf("expected 1 message in queue, got %d", q.Messages)
	}
}

func TestIntegration_Consumer_DeliversAlerts(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("failed to create connection: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var received []*queue.AlertEvent
	var mu sync.Mutex
	receivedCh := make(chan struct{}, 5)

	handler := func(ctx context.Context, event *queue.AlertEvent) error {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()

		receivedCh <- struct{}{}
		return nil
	}

	consumer := queue.NewConsumer(conn, handler, queue.ConsumerConfig{
		Workers:  2,
		Prefetch: 1,
	})

	if err := consumer.Start(ctx); err != nil {
		t.Fatalf("failed to start consumer: %v", err)
	}
	defer consumer.Stop()

	publisher := queue.NewPublisher(conn)
	alertCount := 3
	for i := 0; i < alertCount; i++ {
		alert := domain.NewAlert("user-1", domain.AlertStreak, "streak alert")
		if err := publisher.PublishAlert(ctx, alert); err != nil {
			t.Fatalf("failed to publish alert %d: %v", i, err)
		}
	}

	for i := 0; i < alertCount; i++ {
		select {
		case <-receivedCh:
		case <-ctx.Done():
			t.Fatalf("timeout waiting for alert %d", i)
		}
	}

	mu.Lock()
	if len(received) != alertCount {
		t.Errorf("expected %d alerts, got %d", alertCount, len(received))
	}
	for _, event := range received {
		if event.UserID != "user-1" {
			t.Errorf("UserID = %v, want user-1", event.UserID)
		}
		if event.ID == uuid.Nil {
			t.Error("alert event ID should be set")
		}
	}
	mu.Unlock()
}

func TestIntegration_Connection_PublishJSON(t *testing.T) {
	amqpURL, cleanup := setupRabbitMQ(t)
	defer cleanup()

	conn, err := queue.NewConnection(amqpURL)
	if err != nil {
		t.Fatalf("failed to create connection: %v", err)
	}
	defer conn.Close()

	event := queue.AlertEvent{
		ID:        uuid.New(),
		UserID:    "user-1",
		Type:      "milestone",
		Message:   "You have completed 5 modules",
		CreatedAt: time.Now(),
	}

	if err := conn.PublishJSON(context.Background(), queue.AlertQueueName, event); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	ch := conn.Channel()
	q, err := ch.QueueInspect(queue.AlertQueueName)
	if err != nil {
		t.Fatalf("failed to inspect queue: %v", err)
	}

	if q.Messages != 1 {
		t.Errorf("expected 1 message, got %d", q.Messages)
	}
}
