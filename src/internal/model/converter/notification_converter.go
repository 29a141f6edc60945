package converter

import (
	"time"

	"tour-service/src/internal/model"

	"github.com/google/uuid"
)

func NotificationToEvent(kind model.NotificationKind, recipient string, data map[string]interface{}) *model.NotificationEvent {
	return &model.NotificationEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Recipient: recipient,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}
