package http

import (
	"net/http"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Guest    GuestBookings
	Tenant   TenantBookings
	Payments PaymentNotifications
	DB       Pinger
}

type RouterConfig struct {
	Auth        *Authenticator
	Local       clock.Local
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// NewRouter wires every route behind logging, panic recovery and CORS.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	log := cfg.Logger
	authed := func(h http.HandlerFunc) http.Handler {
		return cfg.Auth.Middleware(h)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", HandleHealth(svc.DB))

	mux.Handle("POST /bookings", authed(HandleCreateBooking(svc.Guest, cfg.Local, log)))
	mux.Handle("GET /bookings", authed(HandleListBookings(svc.Guest, log)))
	mux.Handle("GET /bookings/{uid}", authed(HandleGetBooking(svc.Guest, log)))
	mux.Handle("POST /bookings/{uid}/payment-proof", authed(HandleUploadPaymentProof(svc.Guest, log)))
	mux.Handle("POST /bookings/{uid}/cancel", authed(HandleCancelBooking(svc.Guest, log)))

	mux.Handle("GET /tenant/bookings", authed(HandleTenantListBookings(svc.Tenant, log)))
	mux.Handle("GET /tenant/bookings/{uid}", authed(HandleTenantGetBooking(svc.Tenant, log)))
	mux.Handle("POST /tenant/bookings/{uid}/confirm", authed(HandleTenantConfirm(svc.Tenant, log)))
	mux.Handle("POST /tenant/bookings/{uid}/reject", authed(HandleTenantReject(svc.Tenant, log)))
	mux.Handle("POST /tenant/bookings/{uid}/cancel", authed(HandleTenantCancel(svc.Tenant, log)))
	mux.Handle("POST /tenant/bookings/{uid}/complete", authed(HandleTenantComplete(svc.Tenant, log)))

	mux.Handle("POST /payments/notifications", HandlePaymentNotification(svc.Payments, log))
	mux.Handle("/", NotFoundHandler())

	return RequestLogger(Recover(CORS(cfg.CORSOrigins, mux), log), log)
}
