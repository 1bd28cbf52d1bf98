package http

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const testSecret = "test-secret"

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleBooking(status domain.BookingStatus) domain.Booking {
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	return domain.Booking{
		ID:              1,
		UID:             "3f1f8c1e-6b7a-4a43-9b44-1b7f5c3f2a10",
		UserID:          1,
		RoomID:          5,
		CheckIn:         time.Date(2024, 6, 8, 17, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC),
		TotalPrice:      decimal.NewFromInt(250),
		Fullname:        "Ayu Lestari",
		Email:           "ayu@example.com",
		Phone:           "+628123456789",
		Status:          status,
		PaymentDeadline: now.Add(2 * time.Hour),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// call records one service invocation.
type call struct {
	op     string
	p      domain.Principal
	uid    string
	arg    string
	create app.CreateBookingInput
}

type stubGuest struct {
	mu      sync.Mutex
	calls   []call
	booking domain.Booking
	list    []domain.Booking
	err     error
}

func (s *stubGuest) record(c call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

func (s *stubGuest) last() call {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return call{}
	}
	return s.calls[len(s.calls)-1]
}

func (s *stubGuest) CreateBooking(_ context.Context, p domain.Principal, in app.CreateBookingInput) (domain.Booking, error) {
	s.record(call{op: "create", p: p, create: in})
	return s.booking, s.err
}

func (s *stubGuest) GetBooking(_ context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	s.record(call{op: "get", p: p, uid: uid})
	return s.booking, s.err
}

func (s *stubGuest) ListBookings(_ context.Context, p domain.Principal, status domain.BookingStatus) ([]domain.Booking, error) {
	s.record(call{op: "list", p: p, arg: string(status)})
	return s.list, s.err
}

func (s *stubGuest) UploadPaymentProof(_ context.Context, p domain.Principal, uid, proofURL string) (domain.Booking, error) {
	s.record(call{op: "proof", p: p, uid: uid, arg: proofURL})
	return s.booking, s.err
}

func (s *stubGuest) CancelBooking(_ context.Context, p domain.Principal, uid, reason string) (domain.Booking, error) {
	s.record(call{op: "cancel", p: p, uid: uid, arg: reason})
	return s.booking, s.err
}

type stubTenant struct {
	stubGuest
}

func (s *stubTenant) ConfirmBooking(_ context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	s.record(call{op: "confirm", p: p, uid: uid})
	return s.booking, s.err
}

func (s *stubTenant) RejectBooking(_ context.Context, p domain.Principal, uid, reason string) (domain.Booking, error) {
	s.record(call{op: "reject", p: p, uid: uid, arg: reason})
	return s.booking, s.err
}

func (s *stubTenant) CompleteBooking(_ context.Context, p domain.Principal, uid string) (domain.Booking, error) {
	s.record(call{op: "complete", p: p, uid: uid})
	return s.booking, s.err
}

type stubPayments struct {
	in  app.PaymentNotificationInput
	res app.PaymentNotificationResult
	err error
}

func (s *stubPayments) HandleNotification(_ context.Context, in app.PaymentNotificationInput) (app.PaymentNotificationResult, error) {
	s.in = in
	return s.res, s.err
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }
