package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

// GuestBookings is what the guest routes need from app.BookingService.
type GuestBookings interface {
	CreateBooking(ctx context.Context, p domain.Principal, in app.CreateBookingInput) (domain.Booking, error)
	GetBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error)
	ListBookings(ctx context.Context, p domain.Principal, status domain.BookingStatus) ([]domain.Booking, error)
	UploadPaymentProof(ctx context.Context, p domain.Principal, uid, proofURL string) (domain.Booking, error)
	CancelBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error)
}

type createBookingRequest struct {
	RoomID   int64  `json:"room_id" validate:"required,gt=0"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Fullname string `json:"fullname" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

type paymentProofRequest struct {
	PaymentProof string `json:"payment_proof" validate:"required,url,max=2048"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type bookingResponse struct {
	UID                string     `json:"uid"`
	RoomID             int64      `json:"room_id"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	TotalPrice         string     `json:"total_price"`
	Status             string     `json:"status"`
	Fullname           string     `json:"fullname"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	PaymentProof       string     `json:"payment_proof,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	TransactionID      string     `json:"transaction_id,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	PaymentDeadline    time.Time  `json:"payment_deadline"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		UID:                b.UID,
		RoomID:             b.RoomID,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		TotalPrice:         b.TotalPrice.StringFixed(2),
		Status:             string(b.Status),
		Fullname:           b.Fullname,
		Email:              b.Email,
		Phone:              b.Phone,
		PaymentMethod:      b.PaymentMethod,
		PaymentProof:       b.PaymentProof,
		CancellationReason: b.CancellationReason,
		TransactionID:      b.TransactionID,
		PaidAt:             b.PaidAt,
		PaymentDeadline:    b.PaymentDeadline,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func toBookingList(bs []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	return out
}

// HandleCreateBooking returns an HTTP handler for POST /bookings.
func HandleCreateBooking(svc GuestBookings, local clock.Local, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeRequestError(w, err)
			return
		}
		checkIn, err := parseStayDate("check_in", req.CheckIn, local)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		checkOut, err := parseStayDate("check_out", req.CheckOut, local)
		if err != nil {
			writeRequestError(w, err)
			return
		}

		b, err := svc.CreateBooking(r.Context(), PrincipalFrom(r.Context()), app.CreateBookingInput{
			RoomID:   req.RoomID,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Fullname: req.Fullname,
			Email:    req.Email,
			Phone:    req.Phone,
		})
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

func HandleListBookings(svc GuestBookings, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.BookingStatus(r.URL.Query().Get("status"))
		bs, err := svc.ListBookings(r.Context(), PrincipalFrom(r.Context()), status)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingList(bs))
	}
}

func HandleGetBooking(svc GuestBookings, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetBooking(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"))
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// HandleUploadPaymentProof records a manual transfer proof. The file itself
// is stored elsewhere; only its URL arrives here.
func HandleUploadPaymentProof(svc GuestBookings, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentProofRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeRequestError(w, err)
			return
		}
		b, err := svc.UploadPaymentProof(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"), req.PaymentProof)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func HandleCancelBooking(svc GuestBookings, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reasonRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeRequestError(w, err)
			return
		}
		b, err := svc.CancelBooking(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"), req.Reason)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}
