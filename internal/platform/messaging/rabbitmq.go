// Package messaging publishes domain events to RabbitMQ. Publishing is
// best effort: the broker sits behind a circuit breaker and a failed
// publish never fails the write that produced the event.
package messaging

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Broker wraps a RabbitMQ connection, a channel bound to one durable
// queue, and the circuit breaker guarding publishes.
type Broker struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewBroker(amqpURL, queueName string, logger zerolog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Idempotent declare
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rabbitmq-publisher",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Broker{conn: conn, ch: ch, queueName: queueName, cb: cb}, nil
}

func (b *Broker) Close() error {
	if b.ch != nil {
		if err := b.ch.Close(); err != nil {
			return err
		}
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
