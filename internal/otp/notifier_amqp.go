// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPNotifier publishes codes to a durable RabbitMQ queue. A mail worker
// outside this service consumes the queue.
type AMQPNotifier struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

/*
NewAMQPNotifier dials the broker and declares the queue.

Parameters:
  - url: string (amqp:// connection string)
  - queue: string

Returns:
  - *AMQPNotifier: Ready publisher
  - error: Dial or declare failures
*/
func NewAMQPNotifier(url, queue string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp_dial_failed: %w", err)
	}

	notifier := &AMQPNotifier{conn: conn, queue: queue}
	if err := notifier.openChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return notifier, nil
}

// openChannel (re)creates the channel and declares the queue. Caller holds mu
// or is the constructor.
func (notifier *AMQPNotifier) openChannel() error {
	channel, err := notifier.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp_channel_failed: %w", err)
	}

	// durable, not auto-deleted, not exclusive
	if _, err := channel.QueueDeclare(notifier.queue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return fmt.Errorf("amqp_queue_declare_failed: %w", err)
	}

	notifier.channel = channel
	return nil
}

// newPublishing encodes message as a persistent JSON delivery.
func newPublishing(message Message) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("amqp_marshal_failed: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    message.ID,
		Timestamp:    message.IssuedAt,
		Body:         body,
	}, nil
}

// Notify implements [Notifier]. A channel is not safe for concurrent
// publishing, so publishes are serialized.
func (notifier *AMQPNotifier) Notify(context context.Context, message Message) error {
	publishing, err := newPublishing(message)
	if err != nil {
		return err
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if notifier.channel == nil || notifier.channel.IsClosed() {
		if err := notifier.openChannel(); err != nil {
			return err
		}
	}

	if err := notifier.channel.PublishWithContext(context, "", notifier.queue, false, false, publishing); err != nil {
		return fmt.Errorf("amqp_publish_failed: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (notifier *AMQPNotifier) Close() error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	if notifier.channel != nil {
		_ = notifier.channel.Close()
	}
	return notifier.conn.Close()
}
