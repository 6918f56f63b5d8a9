package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"
)

// Config names the queues and sets consumer parallelism
type Config struct {
	URL          string
	RequestQueue string
	UpdatesQueue string
	Concurrency  int
}

// Consumer owns the broker connection
type Consumer struct {
	conn   *amqp.Connection
	cfg    Config
	logger *slog.Logger
}

// Dial connects to RabbitMQ
func Dial(cfg Config, logger *slog.Logger) (*Consumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	return &Consumer{conn: conn, cfg: cfg, logger: logger}, nil
}

// Close closes the connection
func (c *Consumer) Close() error {
	return c.conn.Close()
}

// Publisher returns a publisher for the updates queue on its own channel
func (c *Consumer) Publisher() (*ChannelPublisher, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("error opening publish channel: %w", err)
	}
	if _, err := declare(ch, c.cfg.UpdatesQueue); err != nil {
		ch.Close()
		return nil, err
	}
	return &ChannelPublisher{ch: ch, queue: c.cfg.UpdatesQueue}, nil
}

// Run consumes the request queue with Concurrency workers until ctx is cancelled or the
// broker closes the channel.
func (c *Consumer) Run(ctx context.Context, worker *Worker) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := declare(ch, c.cfg.RequestQueue); err != nil {
		return err
	}
	// at most one unacked message per worker
	if err := ch.Qos(c.cfg.Concurrency, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	const consumerTag = "tailor-worker"
	msgs, err := ch.Consume(
		c.cfg.RequestQueue,
		consumerTag,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(c.cfg.Concurrency)
	for i := range c.cfg.Concurrency {
		go func(id int) {
			defer wg.Done()
			c.logger.Info("worker started", "worker", id+1)
			for d := range msgs {
				outcome := worker.Handle(ctx, d)
				c.logger.Debug("delivery settled", "worker", id+1, "outcome", outcome)
			}
		}(i)
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	var runErr error
	select {
	case <-ctx.Done():
		// stop deliveries; in-flight messages finish and are settled
		if err := ch.Cancel(consumerTag, false); err != nil {
			c.logger.Warn("failed to cancel consumer", "error", err)
		}
	case amqpErr := <-closed:
		if amqpErr != nil {
			runErr = fmt.Errorf("rabbitmq channel closed: %w", amqpErr)
		}
	}
	wg.Wait()
	return runErr
}

func declare(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return q, nil
}

// ChannelPublisher publishes status updates to a durable queue through the default exchange
type ChannelPublisher struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

// Publish sends one update as a persistent JSON message
func (p *ChannelPublisher) Publish(_ context.Context, update StatusUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(
		"",      // default exchange
		p.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: update.ID,
			Timestamp:     update.Timestamp,
			Body:          body,
		},
	)
}

// Close closes the publish channel
func (p *ChannelPublisher) Close() error {
	return p.ch.Close()
}
