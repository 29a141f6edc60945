package usecase

import (
	"context"
	"fmt"

	"tour-service/src/internal/model"
	"tour-service/src/pkg/log"

	"golang.org/x/sync/errgroup"
)

type Notifier interface {
	Send(ctx context.Context, kind model.NotificationKind, recipient string, data map[string]interface{}) error
}

// NotifyPolicy decides whether a notification is part of the write it
// follows (required: failure rolls the write back) or runs after commit
// (best-effort: failure is reported, the write stands).
type NotifyPolicy string

const (
	NotifyBestEffort NotifyPolicy = "best-effort"
	NotifyRequired   NotifyPolicy = "required"
)

func (p NotifyPolicy) Valid() bool {
	return p == NotifyBestEffort || p == NotifyRequired
}

func DefaultNotifyPolicies() map[model.NotificationKind]NotifyPolicy {
	return map[model.NotificationKind]NotifyPolicy{
		model.NotifyBookingOfferAck:       NotifyBestEffort,
		model.NotifyPaymentInstructions:   NotifyBestEffort,
		model.NotifyPaymentProofSubmitted: NotifyRequired,
		model.NotifyPaymentRejected:       NotifyBestEffort,
		model.NotifyPaymentApproved:       NotifyBestEffort,
		model.NotifyOrderCanceled:         NotifyRequired,
	}
}

type NotificationDispatcher struct {
	Notifier    Notifier
	Log         log.Log
	AdminEmails []string
	Policies    map[model.NotificationKind]NotifyPolicy
}

func NewNotificationDispatcher(notifier Notifier, logger log.Log, adminEmails []string, policies map[model.NotificationKind]NotifyPolicy) *NotificationDispatcher {
	merged := DefaultNotifyPolicies()
	for kind, policy := range policies {
		if policy.Valid() {
			merged[kind] = policy
		}
	}
	return &NotificationDispatcher{
		Notifier:    notifier,
		Log:         logger,
		AdminEmails: adminEmails,
		Policies:    merged,
	}
}

func (d *NotificationDispatcher) Policy(kind model.NotificationKind) NotifyPolicy {
	if policy, ok := d.Policies[kind]; ok {
		return policy
	}
	return NotifyBestEffort
}

func (d *NotificationDispatcher) ToRecipient(ctx context.Context, kind model.NotificationKind, recipient string, data map[string]interface{}) error {
	if err := d.Notifier.Send(ctx, kind, recipient, data); err != nil {
		d.Log.Error("notification-dispatcher", err.Error(), string(kind), recipient)
		return fmt.Errorf("send %s to %s: %w", kind, recipient, err)
	}
	return nil
}

// ToAdmins sends one message per configured admin in parallel and fails if
// any single delivery fails.
func (d *NotificationDispatcher) ToAdmins(ctx context.Context, kind model.NotificationKind, data map[string]interface{}) error {
	if len(d.AdminEmails) == 0 {
		d.Log.Warn("notification-dispatcher", "no admin recipients configured", string(kind), "")
		return nil
	}

	var g errgroup.Group
	for _, email := range d.AdminEmails {
		g.Go(func() error {
			return d.ToRecipient(ctx, kind, email, data)
		})
	}
	return g.Wait()
}
