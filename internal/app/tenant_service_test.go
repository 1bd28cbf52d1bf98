package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantService_Transitions(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 2, 1, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name   string
		from   domain.BookingStatus
		call   func(*TenantService, string) (domain.Booking, error)
		want   domain.BookingStatus
		reason string
		err    error
	}{
		{
			name: "confirm processing",
			from: domain.StatusProcessing,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.ConfirmBooking(ctx, tenant, uid)
			},
			want: domain.StatusConfirmed,
		},
		{
			name: "confirm pending is invalid",
			from: domain.StatusPendingPayment,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.ConfirmBooking(ctx, tenant, uid)
			},
			err: domain.ErrInvalidTransition,
		},
		{
			name: "reject processing",
			from: domain.StatusProcessing,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.RejectBooking(ctx, tenant, uid, "transfer not received")
			},
			want:   domain.StatusRejected,
			reason: "transfer not received",
		},
		{
			name: "reject without reason",
			from: domain.StatusProcessing,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.RejectBooking(ctx, tenant, uid, "")
			},
			err: domain.ErrReasonRequired,
		},
		{
			name: "cancel confirmed",
			from: domain.StatusConfirmed,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.CancelBooking(ctx, tenant, uid, "room under maintenance")
			},
			want:   domain.StatusCancelled,
			reason: "room under maintenance",
		},
		{
			name: "cancel pending is invalid",
			from: domain.StatusPendingPayment,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.CancelBooking(ctx, tenant, uid, "x")
			},
			err: domain.ErrInvalidTransition,
		},
		{
			name: "complete confirmed early",
			from: domain.StatusConfirmed,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.CompleteBooking(ctx, tenant, uid)
			},
			want: domain.StatusCompleted,
		},
		{
			name: "complete cancelled is invalid",
			from: domain.StatusCancelled,
			call: func(s *TenantService, uid string) (domain.Booking, error) {
				return s.CompleteBooking(ctx, tenant, uid)
			},
			err: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newMemStore(map[int64]int64{5: tenant.UserID})
			notifier := &recordingNotifier{}
			svc := NewTenantService(store, clock.NewFixed(now), WithNotifier(notifier))
			b := seedBooking(store, tt.from)

			got, err := tt.call(svc, b.UID)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.from, store.get(b.UID).Status)
				assert.Empty(t, notifier.seen())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			stored := store.get(b.UID)
			assert.Equal(t, tt.want, stored.Status)
			assert.Equal(t, tt.reason, stored.CancellationReason)
			assert.True(t, b.TotalPrice.Equal(stored.TotalPrice))
			assert.Len(t, notifier.seen(), 1)
		})
	}
}

func TestTenantService_ScopedToOwnedRooms(t *testing.T) {
	t.Parallel()

	store := newMemStore(map[int64]int64{5: 99})
	svc := NewTenantService(store, clock.NewFixed(time.Now()))
	ctx := context.Background()
	b := seedBooking(store, domain.StatusProcessing)

	_, err := svc.ConfirmBooking(ctx, tenant, b.UID)
	require.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Equal(t, domain.StatusProcessing, store.get(b.UID).Status)

	_, err = svc.ConfirmBooking(ctx, guest, b.UID)
	require.ErrorIs(t, err, domain.ErrRoleNotAllowed)

	_, err = svc.GetBooking(ctx, domain.Principal{Role: domain.RoleTenant}, b.UID)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	list, err := svc.ListBookings(ctx, tenant, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	owner := domain.Principal{UserID: 99, Role: domain.RoleTenant}
	list, err = svc.ListBookings(ctx, owner, domain.StatusProcessing)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTenantService_NotificationFailureKeepsTransition(t *testing.T) {
	t.Parallel()

	store := newMemStore(map[int64]int64{5: tenant.UserID})
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewTenantService(store, clock.NewFixed(time.Now()), WithNotifier(notifier))
	b := seedBooking(store, domain.StatusProcessing)

	got, err := svc.ConfirmBooking(context.Background(), tenant, b.UID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, domain.StatusConfirmed, store.get(b.UID).Status)
}
