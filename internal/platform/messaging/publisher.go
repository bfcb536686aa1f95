package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationEvent is the wire shape of a notification-created event.
type NotificationEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Href           string    `json:"href,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublishNotificationCreated publishes a persistent JSON message to the
// notification queue through the circuit breaker.
func (b *Broker) PublishNotificationCreated(ctx context.Context, evt NotificationEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= 0 {
		return ctx.Err()
	}

	_, err = b.cb.Execute(func() (interface{}, error) {
		return nil, b.ch.PublishWithContext(
			ctx,
			"",          // default exchange
			b.queueName, // routing key == queue name
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
	})
	return err
}
