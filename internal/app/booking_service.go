package app

import (
	"context"
	"strings"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BookingRepository interface {
	BookingReader
	Transitioner
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockRoom(ctx context.Context, roomID int64) error
	HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut, now time.Time) (bool, error)
	CreateBooking(ctx context.Context, b domain.Booking) (int64, error)
	ListForGuest(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error)
}

// Pricer computes the amount owed for a stay.
type Pricer interface {
	ComputeTotalPrice(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (decimal.Decimal, error)
}

// BookingService runs the guest-facing booking operations.
type BookingService struct {
	repo   BookingRepository
	guard  *Guard
	pricer Pricer
	clock  clock.Clock
	opts   options
}

func NewBookingService(repo BookingRepository, pricer Pricer, clk clock.Clock, opts ...Option) *BookingService {
	return &BookingService{
		repo:   repo,
		guard:  NewGuard(repo),
		pricer: pricer,
		clock:  clk,
		opts:   buildOptions(opts),
	}
}

type CreateBookingInput struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Fullname string
	Email    string
	Phone    string
}

func (in CreateBookingInput) validate(local clock.Local, now time.Time) error {
	if strings.TrimSpace(in.Fullname) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Phone) == "" {
		return domain.ErrContactRequired
	}
	if !local.Day(in.CheckOut).After(local.Day(in.CheckIn)) {
		return domain.ErrInvalidDateRange
	}
	if local.Day(in.CheckIn).Before(local.Day(now)) {
		return domain.ErrCheckInInPast
	}
	return nil
}

// CreateBooking prices the stay and stores a pending_payment booking
// holding the room until its payment deadline.
func (s *BookingService) CreateBooking(ctx context.Context, p domain.Principal, in CreateBookingInput) (domain.Booking, error) {
	if err := requireRole(p, domain.RoleGuest); err != nil {
		return domain.Booking{}, err
	}
	now := s.clock.Now()
	if err := in.validate(s.opts.local, now); err != nil {
		return domain.Booking{}, err
	}

	total, err := s.pricer.ComputeTotalPrice(ctx, in.RoomID, in.CheckIn, in.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}

	booking := domain.Booking{
		UID:             newBookingUID(),
		UserID:          p.UserID,
		RoomID:          in.RoomID,
		CheckIn:         in.CheckIn.UTC(),
		CheckOut:        in.CheckOut.UTC(),
		TotalPrice:      total,
		Fullname:        strings.TrimSpace(in.Fullname),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Status:          domain.StatusPendingPayment,
		PaymentDeadline: now.Add(s.opts.paymentWindow),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockRoom(txCtx, in.RoomID); err != nil {
			return err
		}
		taken, err := s.repo.HasOverlap(txCtx, in.RoomID, booking.CheckIn, booking.CheckOut, now)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrRoomUnavailable
		}
		id, err := s.repo.CreateBooking(txCtx, booking)
		if err != nil {
			return err
		}
		booking.ID = id
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.opts.logger.WithFields(logrus.Fields{
		"booking_uid": booking.UID,
		"room_id":     booking.RoomID,
		"total_price": booking.TotalPrice.String(),
	}).Info("booking created")
	return booking, nil
}

// GetBooking returns one of the guest's bookings.
func (s *BookingService) GetBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	return s.guard.ForGuest(ctx, p, uid)
}

// ListBookings returns the guest's bookings, optionally filtered by status.
func (s *BookingService) ListBookings(ctx context.Context, p domain.Principal, status domain.BookingStatus) ([]domain.Booking, error) {
	if err := requireRole(p, domain.RoleGuest); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domain.ErrUnknownStatus
	}
	return s.repo.ListForGuest(ctx, p.UserID, status)
}

// UploadPaymentProof attaches a stored proof reference and moves the
// booking to processing for the tenant to review.
func (s *BookingService) UploadPaymentProof(ctx context.Context, p domain.Principal, uid, proofURL string) (domain.Booking, error) {
	b, err := s.guard.ForGuest(ctx, p, uid)
	if err != nil {
		return domain.Booking{}, err
	}
	updated, err := applyTransition(ctx, s.repo, b, domain.TransitionUploadPaymentProof, domain.Change{
		At:       s.clock.Now(),
		ProofURL: proofURL,
	})
	if err != nil {
		return domain.Booking{}, err
	}
	notify(ctx, s.opts, updated, domain.TransitionUploadPaymentProof)
	return updated, nil
}

// CancelBooking lets the guest withdraw an unpaid booking.
func (s *BookingService) CancelBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error) {
	b, err := s.guard.ForGuest(ctx, p, uid)
	if err != nil {
		return domain.Booking{}, err
	}
	updated, err := applyTransition(ctx, s.repo, b, domain.TransitionGuestCancel, domain.Change{
		At:     s.clock.Now(),
		Reason: reason,
	})
	if err != nil {
		return domain.Booking{}, err
	}
	notify(ctx, s.opts, updated, domain.TransitionGuestCancel)
	return updated, nil
}
