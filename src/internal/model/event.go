package model

import "time"

type Event interface {
	GetId() string
}

type NotificationKind string

const (
	NotifyBookingOfferAck       NotificationKind = "booking-offer-ack"
	NotifyPaymentInstructions   NotificationKind = "payment-instructions"
	NotifyPaymentProofSubmitted NotificationKind = "payment-proof-submitted"
	NotifyPaymentRejected       NotificationKind = "payment-rejected"
	NotifyPaymentApproved       NotificationKind = "payment-approved"
	NotifyOrderCanceled         NotificationKind = "order-canceled"
)

var NotificationKinds = []NotificationKind{
	NotifyBookingOfferAck,
	NotifyPaymentInstructions,
	NotifyPaymentProofSubmitted,
	NotifyPaymentRejected,
	NotifyPaymentApproved,
	NotifyOrderCanceled,
}

// NotificationEvent is consumed by the mail renderer, which owns the templates.
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Kind      NotificationKind       `json:"kind"`
	Recipient string                 `json:"recipient"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (e *NotificationEvent) GetId() string {
	return e.ID
}
