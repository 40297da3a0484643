package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"website_backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// AMQPBroker публикует задачи в durable-очередь RabbitMQ
type AMQPBroker struct {
	url      string
	queue    string
	prefetch int

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPBroker(url, queue string, prefetch int) *AMQPBroker {
	if prefetch <= 0 {
		prefetch = 50
	}
	return &AMQPBroker{url: url, queue: queue, prefetch: prefetch}
}

func (b *AMQPBroker) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(b.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("queue declare: %w", err)
	}
	return conn, ch, nil
}

// publisherChannel переиспользует соединение, пока оно живо
func (b *AMQPBroker) publisherChannel() (*amqp.Channel, error) {
	if b.ch != nil && !b.ch.IsClosed() && b.conn != nil && !b.conn.IsClosed() {
		return b.ch, nil
	}
	b.resetLocked()

	conn, ch, err := b.dial()
	if err != nil {
		return nil, err
	}
	b.conn, b.ch = conn, ch
	return ch, nil
}

func (b *AMQPBroker) resetLocked() {
	if b.ch != nil {
		_ = b.ch.Close()
		b.ch = nil
	}
	if b.conn != nil {
		_ = b.conn.Close()
		b.conn = nil
	}
}

func (b *AMQPBroker) Publish(ctx context.Context, task Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.publisherChannel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    task.ID,
		Type:         task.Name,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", b.queue, false, false, pub); err != nil {
		b.resetLocked()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Consume держит соединение и переподключается с экспоненциальной задержкой
func (b *AMQPBroker) Consume(ctx context.Context, handler func(ctx context.Context, task Task) error) error {
	backoff := minBackoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, ch, err := b.dial()
		if err != nil {
			logger.WorkerLog("amqp-consumer", "connect", err)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = minBackoff

		err = b.consumeLoop(ctx, ch, handler)
		_ = ch.Close()
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.WorkerLog("amqp-consumer", "consume loop ended, reconnecting", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (b *AMQPBroker) consumeLoop(ctx context.Context, ch *amqp.Channel, handler func(ctx context.Context, task Task) error) error {
	if err := ch.Qos(b.prefetch, 0, false); err != nil {
		logger.WorkerLog("amqp-consumer", "set qos", err)
	}

	msgs, err := ch.Consume(b.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			var task Task
			if err := json.Unmarshal(d.Body, &task); err != nil {
				logger.WorkerLog("amqp-consumer", "unmarshal", err)
				_ = d.Nack(false, false)
				continue
			}
			if err := handler(ctx, task); err != nil {
				// без requeue, чтобы не зациклиться на битой задаче
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (b *AMQPBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
	return nil
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
