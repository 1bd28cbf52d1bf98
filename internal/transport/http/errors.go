package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidationFailed   = "validation_failed"
	codeInvalidToken       = "invalid_token"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusForKind(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized, domain.KindExternalVerificationFailed:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindInvalidStateTransition, domain.KindConflict:
		return http.StatusConflict
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps a core error onto a status and JSON body.
// Internal errors are logged and never echoed to the client.
func writeDomainError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		if log != nil {
			log.WithError(err).Error("request failed")
		}
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	writeError(w, statusForKind(de.Kind), de.Code, de.Message)
}
