package http

import (
	"context"
	"net/http"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

// TenantBookings is what the tenant routes need from app.TenantService.
type TenantBookings interface {
	GetBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error)
	ListBookings(ctx context.Context, p domain.Principal, status domain.BookingStatus) ([]domain.Booking, error)
	ConfirmBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error)
	RejectBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error)
	CancelBooking(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error)
	CompleteBooking(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error)
}

func HandleTenantListBookings(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
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

func HandleTenantGetBooking(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetBooking(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"))
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

type tenantAction func(ctx context.Context, p domain.Principal, uid string) (domain.Booking, error)

type tenantReasonAction func(ctx context.Context, p domain.Principal, uid, reason string) (domain.Booking, error)

func handleTenantAction(action tenantAction, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := action(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"))
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func handleTenantReasonAction(action tenantReasonAction, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reasonRequest
		if err := decodeJSON(r, &req, true); err != nil {
			writeRequestError(w, err)
			return
		}
		b, err := action(r.Context(), PrincipalFrom(r.Context()), r.PathValue("uid"), req.Reason)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func HandleTenantConfirm(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
	return handleTenantAction(svc.ConfirmBooking, log)
}

func HandleTenantReject(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
	return handleTenantReasonAction(svc.RejectBooking, log)
}

func HandleTenantCancel(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
	return handleTenantReasonAction(svc.CancelBooking, log)
}

func HandleTenantComplete(svc TenantBookings, log logrus.FieldLogger) http.HandlerFunc {
	return handleTenantAction(svc.CompleteBooking, log)
}
