package app

import (
	"context"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

// Transitioner persists a transition only if the row still holds from.
type Transitioner interface {
	UpdateTransition(ctx context.Context, b domain.Booking, from domain.BookingStatus) (bool, error)
}

// Notifier is told about transitions after they are stored.
type Notifier interface {
	BookingChanged(ctx context.Context, b domain.Booking, t domain.Transition) error
}

type nopNotifier struct{}

func (nopNotifier) BookingChanged(context.Context, domain.Booking, domain.Transition) error {
	return nil
}

// applyTransition validates t in memory, then writes it guarded by the
// status that was read. Losing the race yields ErrStatusChanged.
func applyTransition(ctx context.Context, repo Transitioner, b domain.Booking, t domain.Transition, ch domain.Change) (domain.Booking, error) {
	from := b.Status
	if err := b.Apply(t, ch); err != nil {
		return domain.Booking{}, err
	}
	applied, err := repo.UpdateTransition(ctx, b, from)
	if err != nil {
		return domain.Booking{}, err
	}
	if !applied {
		return domain.Booking{}, domain.ErrStatusChanged
	}
	return b, nil
}

func notify(ctx context.Context, o options, b domain.Booking, t domain.Transition) {
	if err := o.notifier.BookingChanged(ctx, b, t); err != nil {
		o.logger.WithFields(logrus.Fields{
			"booking_uid": b.UID,
			"transition":  string(t),
			"error":       err,
		}).Warn("notification failed")
	}
}
