package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/clock"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string { return e.msg }

// decodeJSON reads and validates a request body. strict rejects fields the
// request type does not declare.
func decodeJSON(r *http.Request, dst any, strict bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return &requestError{code: codeInvalidRequestBody, msg: "invalid request body"}
	}
	if err := validate.Struct(dst); err != nil {
		return &requestError{code: codeValidationFailed, msg: describeValidation(err)}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func writeRequestError(w http.ResponseWriter, err error) {
	var re *requestError
	if errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, re.code, re.msg)
		return
	}
	writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
}

// parseStayDate accepts an RFC 3339 instant or a bare date. A bare date
// names a day on the business calendar and is converted to its UTC instant.
func parseStayDate(field, raw string, local clock.Local) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, &requestError{
			code: codeValidationFailed,
			msg:  fmt.Sprintf("%s must be a date (YYYY-MM-DD) or RFC 3339 time", field),
		}
	}
	return d.Add(-local.Offset()), nil
}
