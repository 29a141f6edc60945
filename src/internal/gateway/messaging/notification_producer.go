package messaging

import (
	"context"
	"errors"
	"fmt"

	"tour-service/src/internal/model"
	"tour-service/src/internal/model/converter"
	"tour-service/src/pkg/kafka"
	"tour-service/src/pkg/log"
)

// NotificationProducer hands templated emails to the mail renderer through
// Kafka. A nil error means the broker acknowledged the message.
type NotificationProducer struct {
	Producer[*model.NotificationEvent]
}

func NewNotificationProducer(producer kafka.Producer, topic string, log log.Log) *NotificationProducer {
	return &NotificationProducer{
		Producer: Producer[*model.NotificationEvent]{
			Producer: producer,
			Topic:    topic,
			Log:      log,
		},
	}
}

func (n *NotificationProducer) Send(ctx context.Context, kind model.NotificationKind, recipient string, data map[string]interface{}) error {
	if recipient == "" {
		return errors.New("notification: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Producer.Producer == nil {
		return fmt.Errorf("notification: producer disabled, %s to %s not sent", kind, recipient)
	}

	event := converter.NotificationToEvent(kind, recipient, data)
	if err := n.Producer.Send(event); err != nil {
		return fmt.Errorf("notification: send %s: %w", kind, err)
	}
	n.Log.Info("notification-producer", "notification queued", string(kind), recipient)
	return nil
}
