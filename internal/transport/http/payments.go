package http

import (
	"context"
	"net/http"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/app"
	"github.com/sirupsen/logrus"
)

type PaymentNotifications interface {
	HandleNotification(ctx context.Context, in app.PaymentNotificationInput) (app.PaymentNotificationResult, error)
}

// paymentNotificationRequest follows the gateway's HTTP notification body.
// Fields not listed here are ignored.
type paymentNotificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

type paymentNotificationResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

// HandlePaymentNotification is unauthenticated; the signature is the credential.
func HandlePaymentNotification(svc PaymentNotifications, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentNotificationRequest
		if err := decodeJSON(r, &req, false); err != nil {
			writeRequestError(w, err)
			return
		}

		res, err := svc.HandleNotification(r.Context(), app.PaymentNotificationInput{
			OrderUID:          req.OrderID,
			StatusCode:        req.StatusCode,
			GrossAmount:       req.GrossAmount,
			SignatureKey:      req.SignatureKey,
			TransactionStatus: req.TransactionStatus,
			FraudStatus:       req.FraudStatus,
			PaymentType:       req.PaymentType,
			TransactionID:     req.TransactionID,
		})
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, paymentNotificationResponse{
			OrderID: res.Booking.UID,
			Status:  string(res.Booking.Status),
			Changed: res.Changed,
		})
	}
}
