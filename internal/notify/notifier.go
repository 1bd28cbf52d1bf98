// Package notify tells guests about booking changes. Delivery is
// best-effort: callers log a failure and carry on.
package notify

import (
	"context"
	"fmt"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

// Message is what a guest receives after a transition.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Compose returns the guest message for t, or false when t is silent.
func Compose(b domain.Booking, t domain.Transition) (Message, bool) {
	var subject, body string
	switch t {
	case domain.TransitionTenantConfirm, domain.TransitionPaymentAccepted:
		subject = "Your booking is confirmed"
		body = fmt.Sprintf("Booking %s from %s to %s is confirmed. Total paid: %s.",
			b.UID, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.TotalPrice.StringFixed(2))
	case domain.TransitionTenantReject:
		subject = "Your payment proof was rejected"
		body = fmt.Sprintf("Booking %s was rejected: %s.", b.UID, b.CancellationReason)
	case domain.TransitionTenantCancel:
		subject = "Your booking was cancelled by the host"
		body = fmt.Sprintf("Booking %s was cancelled: %s.", b.UID, b.CancellationReason)
	case domain.TransitionAutoComplete:
		subject = "Thanks for staying with us"
		body = fmt.Sprintf("Booking %s is complete. We hope you enjoyed your stay.", b.UID)
	default:
		return Message{}, false
	}
	return Message{To: b.Email, Subject: subject, Body: body}, true
}

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// LogSender writes messages to the log instead of a mail provider.
type LogSender struct {
	Log logrus.FieldLogger
}

func (s LogSender) Send(_ context.Context, m Message) error {
	s.Log.WithFields(logrus.Fields{
		"to":      m.To,
		"subject": m.Subject,
	}).Info(m.Body)
	return nil
}

// Notifier implements app.Notifier on top of a Sender.
type Notifier struct {
	sender Sender
}

func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) BookingChanged(ctx context.Context, b domain.Booking, t domain.Transition) error {
	m, ok := Compose(b, t)
	if !ok {
		return nil
	}
	if m.To == "" {
		return fmt.Errorf("notify %s: booking has no email", b.UID)
	}
	if err := n.sender.Send(ctx, m); err != nil {
		return fmt.Errorf("notify %s: %w", b.UID, err)
	}
	return nil
}
