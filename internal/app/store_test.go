package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory booking store whose updates are conditional on
// the expected prior status, like the Postgres repository.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[string]domain.Booking
	// roomTenant maps room id to the tenant owning its property.
	roomTenant map[int64]int64

	updateErr   map[string]error
	lockErr     error
	createCalls int
}

func newMemStore(roomTenant map[int64]int64) *memStore {
	if roomTenant == nil {
		roomTenant = map[int64]int64{}
	}
	return &memStore{
		bookings:   map[string]domain.Booking{},
		roomTenant: roomTenant,
		updateErr:  map[string]error{},
	}
}

func (m *memStore) put(b domain.Booking) domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	m.bookings[b.UID] = b
	return b
}

func (m *memStore) get(uid string) domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[uid]
}

func (m *memStore) setStatus(uid string, s domain.BookingStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[uid]
	b.Status = s
	m.bookings[uid] = b
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memStore) LockRoom(_ context.Context, roomID int64) error {
	if m.lockErr != nil {
		return m.lockErr
	}
	if _, ok := m.roomTenant[roomID]; !ok {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (m *memStore) HasOverlap(_ context.Context, roomID int64, checkIn, checkOut, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.RoomID != roomID {
			continue
		}
		active := false
		for _, s := range domain.ActiveStatuses {
			if b.Status == s {
				active = true
			}
		}
		if !active || (b.Status == domain.StatusPendingPayment && b.PaymentDeadline.Before(now)) {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateBooking(_ context.Context, b domain.Booking) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if _, exists := m.bookings[b.UID]; exists {
		return 0, errors.New("duplicate uid")
	}
	m.nextID++
	b.ID = m.nextID
	m.bookings[b.UID] = b
	return b.ID, nil
}

func (m *memStore) GetByUID(_ context.Context, uid string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[uid]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m *memStore) GetByUIDForGuest(ctx context.Context, uid string, userID int64) (domain.Booking, error) {
	b, err := m.GetByUID(ctx, uid)
	if err != nil || b.UserID != userID {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m *memStore) GetByUIDForTenant(ctx context.Context, uid string, tenantID int64) (domain.Booking, error) {
	b, err := m.GetByUID(ctx, uid)
	if err != nil || m.roomTenant[b.RoomID] != tenantID {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m *memStore) list(match func(domain.Booking) bool) []domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ListForGuest(_ context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool {
		return b.UserID == userID && (status == "" || b.Status == status)
	}), nil
}

func (m *memStore) ListForTenant(_ context.Context, tenantID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool {
		return m.roomTenant[b.RoomID] == tenantID && (status == "" || b.Status == status)
	}), nil
}

func (m *memStore) UpdateTransition(_ context.Context, b domain.Booking, from domain.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.updateErr[b.UID]; err != nil {
		return false, err
	}
	cur, ok := m.bookings[b.UID]
	if !ok || cur.Status != from {
		return false, nil
	}
	// Immutable columns are never rewritten.
	b.TotalPrice, b.CheckIn, b.CheckOut = cur.TotalPrice, cur.CheckIn, cur.CheckOut
	m.bookings[b.UID] = b
	return true, nil
}

func (m *memStore) CancelExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for uid, b := range m.bookings {
		if b.Status == domain.StatusPendingPayment && b.PaymentDeadline.Before(now) {
			b.Status = domain.StatusCancelled
			b.UpdatedAt = now
			m.bookings[uid] = b
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListCompletable(_ context.Context, cutoff time.Time) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool {
		return b.Status == domain.StatusConfirmed && b.CheckOut.Before(cutoff)
	}), nil
}

type stubPricer struct {
	total decimal.Decimal
	err   error
	calls int
}

func (s *stubPricer) ComputeTotalPrice(_ context.Context, _ int64, _, _ time.Time) (decimal.Decimal, error) {
	s.calls++
	return s.total, s.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Transition
	err    error
}

func (r *recordingNotifier) BookingChanged(_ context.Context, _ domain.Booking, t domain.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, t)
	return r.err
}

func (r *recordingNotifier) seen() []domain.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Transition(nil), r.events...)
}
