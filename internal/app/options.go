package app

import (
	"io"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/sirupsen/logrus"
)

const (
	defaultPaymentWindow = 2 * time.Hour
	defaultCompleteGrace = 6 * time.Hour
)

type options struct {
	logger        logrus.FieldLogger
	notifier      Notifier
	local         clock.Local
	paymentWindow time.Duration
	completeGrace time.Duration
}

func buildOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := options{
		logger:        discard,
		notifier:      nopNotifier{},
		local:         clock.NewLocal(clock.DefaultLocalOffset),
		paymentWindow: defaultPaymentWindow,
		completeGrace: defaultCompleteGrace,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures the services in this package.
type Option func(*options)

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLocal sets the business calendar used for day comparisons.
func WithLocal(l clock.Local) Option {
	return func(o *options) {
		o.local = l
	}
}

// WithPaymentWindow overrides how long a new booking may stay unpaid.
func WithPaymentWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.paymentWindow = d
		}
	}
}

// WithCompleteGrace overrides how long after check-out a confirmed booking auto-completes.
func WithCompleteGrace(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.completeGrace = d
		}
	}
}
