package app

import (
	"context"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
)

// BookingReader loads bookings scoped to the acting principal.
type BookingReader interface {
	GetByUIDForGuest(ctx context.Context, uid string, userID int64) (domain.Booking, error)
	GetByUIDForTenant(ctx context.Context, uid string, tenantID int64) (domain.Booking, error)
}

// Guard resolves the caller and loads only bookings they may act on.
// A booking owned by someone else is reported exactly like a missing one.
type Guard struct {
	repo BookingReader
}

func NewGuard(repo BookingReader) *Guard {
	return &Guard{repo: repo}
}

func requireRole(p domain.Principal, role domain.Role) error {
	if !p.Valid() {
		return domain.ErrUnauthenticated
	}
	if p.Role != role {
		return domain.ErrRoleNotAllowed
	}
	return nil
}

// ForGuest loads the booking identified by uid if p is its guest.
func (g *Guard) ForGuest(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	if err := requireRole(p, domain.RoleGuest); err != nil {
		return domain.Booking{}, err
	}
	id, ok := normalizeUID(uid)
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return g.repo.GetByUIDForGuest(ctx, id, p.UserID)
}

// ForTenant loads the booking identified by uid if p owns the booked room's property.
func (g *Guard) ForTenant(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	if err := requireRole(p, domain.RoleTenant); err != nil {
		return domain.Booking{}, err
	}
	id, ok := normalizeUID(uid)
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return g.repo.GetByUIDForTenant(ctx, id, p.UserID)
}
