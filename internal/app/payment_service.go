package app

import (
	"context"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PaymentRepository interface {
	Transitioner
	GetByUID(ctx context.Context, uid string) (domain.Booking, error)
}

// SignatureVerifier authenticates a gateway notification.
type SignatureVerifier interface {
	Verify(orderUID, statusCode, grossAmount, signature string) bool
}

// PaymentService applies verified payment gateway notifications.
type PaymentService struct {
	repo     PaymentRepository
	verifier SignatureVerifier
	clock    clock.Clock
	opts     options
}

func NewPaymentService(repo PaymentRepository, verifier SignatureVerifier, clk clock.Clock, opts ...Option) *PaymentService {
	return &PaymentService{
		repo:     repo,
		verifier: verifier,
		clock:    clk,
		opts:     buildOptions(opts),
	}
}

type PaymentNotificationInput struct {
	OrderUID          string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	TransactionID     string
}

type PaymentNotificationResult struct {
	Booking domain.Booking
	Changed bool
}

// HandleNotification verifies the notification before touching any state.
// Repeated deliveries for a booking already in the target status are no-ops.
func (s *PaymentService) HandleNotification(ctx context.Context, in PaymentNotificationInput) (PaymentNotificationResult, error) {
	if !s.verifier.Verify(in.OrderUID, in.StatusCode, in.GrossAmount, in.SignatureKey) {
		s.opts.logger.WithField("order_uid", in.OrderUID).Warn("payment notification rejected: bad signature")
		return PaymentNotificationResult{}, domain.ErrInvalidSignature
	}

	outcome, err := payment.Resolve(in.TransactionStatus, in.FraudStatus)
	if err != nil {
		return PaymentNotificationResult{}, err
	}

	uid, ok := normalizeUID(in.OrderUID)
	if !ok {
		return PaymentNotificationResult{}, domain.ErrBookingNotFound
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return PaymentNotificationResult{}, err
	}

	amount, err := decimal.NewFromString(in.GrossAmount)
	if err != nil || !amount.Equal(b.TotalPrice) {
		return PaymentNotificationResult{}, domain.ErrAmountMismatch
	}

	t, ok := outcome.Transition()
	if !ok || b.Status == t.Target() {
		return PaymentNotificationResult{Booking: b}, nil
	}

	updated, err := applyTransition(ctx, s.repo, b, t, domain.Change{
		At:            s.clock.Now(),
		PaymentMethod: in.PaymentType,
		TransactionID: in.TransactionID,
	})
	if err != nil {
		return PaymentNotificationResult{}, err
	}

	s.opts.logger.WithFields(logrus.Fields{
		"booking_uid":        updated.UID,
		"transaction_status": in.TransactionStatus,
		"status":             string(updated.Status),
	}).Info("payment notification applied")
	notify(ctx, s.opts, updated, t)
	return PaymentNotificationResult{Booking: updated, Changed: true}, nil
}
