//go:build integration

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"meta_indexer/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) newQueue(suffix string) *RabbitMQ {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-" + suffix,
		RoutingKey: "test-routing-key-" + suffix,
		QueueName:  "test-queue-" + suffix,
	}
	q, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	return q
}

func testBatch(messageID string) *domain.BatchMessage {
	return &domain.BatchMessage{
		MessageID: messageID,
		IndexName: "records",
		Events: []domain.EventMessage{
			{
				EventID:          1,
				EndpointID:       1,
				RepositoryID:     1,
				RecordIdentifier: "oai:zenodo.org:1",
				RawMetadata:      "<record/>",
				RepoCode:         "zenodo",
				HarvestURL:       "https://zenodo.org/oai2d",
				Datestamp:        time.Now().UTC().Truncate(time.Millisecond),
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// handlerFunc adapts a function to the BatchHandler interface.
type handlerFunc func(ctx context.Context, msg *domain.BatchMessage) error

func (f handlerFunc) HandleBatch(ctx context.Context, msg *domain.BatchMessage) error {
	return f(ctx, msg)
}

func (s *RabbitMQIntegrationSuite) TestPublish_MessageFormat() {
	q := s.newQueue("format")
	defer q.Close()

	batch := testBatch("msg-1")
	s.NoError(q.Publish(s.ctx, batch))

	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume("test-queue-format", "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		s.Equal("application/json", msg.ContentType)
		s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

		var received domain.BatchMessage
		s.NoError(json.Unmarshal(msg.Body, &received))
		s.Equal("msg-1", received.MessageID)
		s.Equal("records", received.IndexName)
		s.Require().Len(received.Events, 1)
		s.Equal("oai:zenodo.org:1", received.Events[0].RecordIdentifier)
		s.Equal("zenodo", received.Events[0].RepoCode)
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
	}
}

func (s *RabbitMQIntegrationSuite) TestConsume_AcksOnSuccess() {
	q := s.newQueue("ack")
	defer q.Close()

	s.Require().NoError(q.Publish(s.ctx, testBatch("msg-ack")))

	ctx, cancel := context.WithCancel(s.ctx)
	var mu sync.Mutex
	var handled []string

	handler := handlerFunc(func(_ context.Context, msg *domain.BatchMessage) error {
		mu.Lock()
		handled = append(handled, msg.MessageID)
		mu.Unlock()
		cancel()
		return nil
	})

	err := q.Consume(ctx, handler)
	s.ErrorIs(err, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]string{"msg-ack"}, handled)
}

func (s *RabbitMQIntegrationSuite) TestConsume_RequeuesFirstFailureOnly() {
	q := s.newQueue("requeue")
	defer q.Close()

	s.Require().NoError(q.Publish(s.ctx, testBatch("msg-fail")))

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	var mu sync.Mutex
	attempts := 0

	handler := handlerFunc(func(_ context.Context, _ *domain.BatchMessage) error {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n >= 2 {
			// second delivery arrives redelivered; failing it again drops it
			defer cancel()
		}
		return errors.New("transform failed")
	})

	err := q.Consume(ctx, handler)
	s.Error(err)

	mu.Lock()
	defer mu.Unlock()
	s.Equal(2, attempts)
}
