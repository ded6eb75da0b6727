// Package fulfillment owns what happens after a payment is confirmed. Both the
// status-polling path and the webhook path funnel into the same finalizer, so
// notification dispatch has a single owner.
package fulfillment

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v81"

	"song-order-service/internal/catalog"
	"song-order-service/internal/notify"
	"song-order-service/internal/orders"
	"song-order-service/internal/stores/kafka"
	"song-order-service/pkg/logkey"
)

// Ledger is the at-most-once guard. MarkNotified returns true exactly once per
// session id.
type Ledger interface {
	MarkNotified(ctx context.Context, sessionID string) (bool, error)
}

// EventProducer publishes order events.
type EventProducer interface {
	ProduceMessage(topic string, key, value []byte) error
}

// Finalizer dispatches the post-payment side effects for a paid session.
// Ledger and Producer are optional: without a ledger every paid observation
// re-sends the notifications, without a producer no event is published.
type Finalizer struct {
	Ledger   Ledger
	Sender   notify.Sender
	Composer notify.Composer
	Producer EventProducer
}

// FinalizePaid sends the internal notification, the customer confirmation and
// the order-paid event for a session whose payment was observed as paid.
// Failures are logged and swallowed: a failed notification must never fail the
// request that observed the payment.
func (f *Finalizer) FinalizePaid(ctx context.Context, sess *stripe.CheckoutSession) {
	if f.Ledger != nil {
		first, err := f.Ledger.MarkNotified(ctx, sess.ID)
		if err != nil {
			// Dispatch anyway: a duplicate email beats a lost order.
			slog.Error("notification ledger check failed",
				slog.String(logkey.SessionID, sess.ID), slog.String(logkey.ErrorKey, err.Error()))
		} else if !first {
			slog.Info("order already notified, skipping dispatch",
				slog.String(logkey.SessionID, sess.ID))
			return
		}
	}

	order := orders.OrderFromSession(sess)
	customerEmail := orders.CustomerEmail(sess)

	internal := f.Composer.InternalNotice(order, customerEmail, time.Now())
	if err := f.Sender.Send(ctx, internal); err != nil {
		slog.Error("failed to send internal order notification",
			slog.String(logkey.SessionID, sess.ID), slog.String(logkey.ErrorKey, err.Error()))
	} else {
		slog.Info("internal order notification sent", slog.String(logkey.SessionID, sess.ID))
	}

	if customerEmail == "" {
		slog.Info("customer confirmation skipped, no customer email on session",
			slog.String(logkey.SessionID, sess.ID))
	} else {
		confirmation := f.Composer.CustomerConfirmation(order, customerEmail)
		if err := f.Sender.Send(ctx, confirmation); err != nil {
			slog.Error("failed to send customer confirmation",
				slog.String(logkey.SessionID, sess.ID), slog.String(logkey.ErrorKey, err.Error()))
		} else {
			slog.Info("customer confirmation sent", slog.String(logkey.SessionID, sess.ID))
		}
	}

	if f.Producer != nil {
		f.publishOrderPaid(sess, order, customerEmail)
	}
}

func (f *Finalizer) publishOrderPaid(sess *stripe.CheckoutSession, order orders.Order, customerEmail string) {
	lines := catalog.ChargeLines(catalog.Lookup(order.Plan), order.Urgent, order.Video, f.Composer.Taxed)
	event := kafka.OrderPaidEvent{
		SessionID:     sess.ID,
		Plan:          catalog.Lookup(order.Plan).ID,
		AmountTotal:   catalog.Total(lines),
		CustomerEmail: customerEmail,
		Urgent:        order.Urgent,
		Video:         order.Video,
		CreatedAt:     time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal order-paid event", slog.String(logkey.ErrorKey, err.Error()))
		return
	}
	if err := f.Producer.ProduceMessage(kafka.TopicOrderPaid, []byte(sess.ID), value); err != nil {
		slog.Error("failed to produce order-paid event",
			slog.String(logkey.SessionID, sess.ID), slog.String(logkey.ErrorKey, err.Error()))
		return
	}
	slog.Info("order-paid event produced", slog.String(logkey.SessionID, sess.ID))
}
