package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusProcessing     BookingStatus = "processing"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusRejected       BookingStatus = "rejected"
)

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusProcessing, StatusConfirmed,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// ActiveStatuses hold the room for their date range.
var ActiveStatuses = []BookingStatus{StatusPendingPayment, StatusProcessing, StatusConfirmed}

// Booking is a guest's reservation of a room for [CheckIn, CheckOut).
type Booking struct {
	ID                 int64
	UID                string
	UserID             int64
	RoomID             int64
	CheckIn            time.Time
	CheckOut           time.Time
	TotalPrice         decimal.Decimal
	Fullname           string
	Email              string
	Phone              string
	Status             BookingStatus
	PaymentMethod      string
	PaymentProof       string
	CancellationReason string
	TransactionID      string
	PaidAt             *time.Time
	PaymentDeadline    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Change carries the transition-specific data applied alongside a status change.
type Change struct {
	At            time.Time
	Reason        string
	ProofURL      string
	PaymentMethod string
	TransactionID string
}

// Apply validates t against the current status and mutates b in place.
// On error b is left untouched.
func (b *Booking) Apply(t Transition, ch Change) error {
	r, ok := transitions[t]
	if !ok || !r.allows(b.Status) {
		return ErrInvalidTransition
	}

	reason := strings.TrimSpace(ch.Reason)
	if r.reasonRequired && reason == "" {
		return ErrReasonRequired
	}

	switch t {
	case TransitionUploadPaymentProof:
		proof := strings.TrimSpace(ch.ProofURL)
		if proof == "" {
			return ErrProofRequired
		}
		b.PaymentProof = proof
		b.PaymentMethod = "manual_transfer"
		paid := ch.At
		b.PaidAt = &paid
	case TransitionPaymentAccepted:
		if b.PaidAt == nil {
			paid := ch.At
			b.PaidAt = &paid
		}
		if ch.PaymentMethod != "" {
			b.PaymentMethod = ch.PaymentMethod
		}
		if ch.TransactionID != "" {
			b.TransactionID = ch.TransactionID
		}
	case TransitionPaymentDenied:
		if ch.TransactionID != "" {
			b.TransactionID = ch.TransactionID
		}
	}
	if r.reasonRequired {
		b.CancellationReason = reason
	}

	b.Status = r.to
	b.UpdatedAt = ch.At
	return nil
}
