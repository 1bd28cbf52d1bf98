package domain

import "errors"

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindInvalidStateTransition
	KindValidation
	KindConflict
	KindExternalVerificationFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInvalidStateTransition:
		return "invalid_state_transition"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindExternalVerificationFailed:
		return "external_verification_failed"
	default:
		return "internal"
	}
}

// Error is a typed, machine-checkable failure returned by core operations.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrBookingNotFound = newError(KindNotFound, "booking_not_found", "booking not found")
	ErrRoomNotFound    = newError(KindNotFound, "room_not_found", "room not found")

	ErrUnauthenticated = newError(KindUnauthorized, "unauthorized", "caller could not be resolved")
	ErrRoleNotAllowed  = newError(KindForbidden, "forbidden", "role not allowed for this operation")

	ErrInvalidTransition = newError(KindInvalidStateTransition, "invalid_state_transition", "transition not allowed from current status")
	ErrStatusChanged     = newError(KindInvalidStateTransition, "status_changed", "booking status changed concurrently")

	ErrInvalidDateRange     = newError(KindValidation, "invalid_date_range", "check_out must be after check_in")
	ErrCheckInInPast        = newError(KindValidation, "check_in_in_past", "check_in must not be in the past")
	ErrContactRequired      = newError(KindValidation, "contact_required", "fullname, email and phone are required")
	ErrReasonRequired       = newError(KindValidation, "reason_required", "a reason is required")
	ErrProofRequired        = newError(KindValidation, "payment_proof_required", "payment proof reference is required")
	ErrAmountMismatch       = newError(KindValidation, "amount_mismatch", "gross amount does not match booking total")
	ErrUnknownPaymentStatus = newError(KindValidation, "unknown_payment_status", "unknown payment status")
	ErrUnknownStatus        = newError(KindValidation, "unknown_status", "unknown booking status")

	ErrRoomUnavailable = newError(KindConflict, "room_unavailable", "room is already booked for these dates")

	ErrInvalidSignature = newError(KindExternalVerificationFailed, "invalid_signature", "payment signature mismatch")
)

// KindOf reports the kind of err; unclassified errors are internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// CodeOf reports the machine-checkable code of err.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal_error"
}
