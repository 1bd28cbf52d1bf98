package app

import (
	"context"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
)

type TenantRepository interface {
	BookingReader
	Transitioner
	ListForTenant(ctx context.Context, tenantID int64, status domain.BookingStatus) ([]domain.Booking, error)
}

// TenantService runs the operations a property owner performs on bookings of their rooms.
type TenantService struct {
	repo  TenantRepository
	guard *Guard
	clock clock.Clock
	opts  options
}

func NewTenantService(repo TenantRepository, clk clock.Clock, opts ...Option) *TenantService {
	return &TenantService{
		repo:  repo,
		guard: NewGuard(repo),
		clock: clk,
		opts:  buildOptions(opts),
	}
}

func (s *TenantService) GetBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	return s.guard.ForTenant(ctx, p, uid)
}

func (s *TenantService) ListBookings(ctx context.Context, p domain.Principal, status domain.BookingStatus) ([]domain.Booking, error) {
	if err := requireRole(p, domain.RoleTenant); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domain.ErrUnknownStatus
	}
	return s.repo.ListForTenant(ctx, p.UserID, status)
}

// ConfirmBooking accepts a submitted payment proof.
func (s *TenantService) ConfirmBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	return s.transition(ctx, p, uid, domain.TransitionTenantConfirm, "")
}

// RejectBooking refuses a submitted payment proof.
func (s *TenantService) RejectBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error) {
	return s.transition(ctx, p, uid, domain.TransitionTenantReject, reason)
}

func (s *TenantService) CancelBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error) {
	return s.transition(ctx, p, uid, domain.TransitionTenantCancel, reason)
}

// CompleteBooking closes a confirmed stay ahead of the auto-complete sweep.
func (s *TenantService) CompleteBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	return s.transition(ctx, p, uid, domain.TransitionTenantComplete, "")
}

func (s *TenantService) transition(ctx context.Context, p domain.Principal, uid string, t domain.Transition, reason string) (domain.Booking, error) {
	b, err := s.guard.ForTenant(ctx, p, uid)
	if err != nil {
		return domain.Booking{}, err
	}
	updated, err := applyTransition(ctx, s.repo, b, t, domain.Change{
		At:     s.clock.Now(),
		Reason: reason,
	})
	if err != nil {
		return domain.Booking{}, err
	}
	notify(ctx, s.opts, updated, t)
	return updated, nil
}
