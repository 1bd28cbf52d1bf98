package payment

import (
	"strings"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
)

// Outcome is what a gateway notification means for the booking.
type Outcome int

const (
	OutcomeIgnore Outcome = iota
	OutcomeAccept
	OutcomeDeny
)

// Resolve maps the gateway's transaction/fraud vocabulary onto an outcome.
func Resolve(transactionStatus, fraudStatus string) (Outcome, error) {
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "capture":
		switch fraud {
		case "", "accept":
			return OutcomeAccept, nil
		case "challenge":
			return OutcomeIgnore, nil
		default:
			return OutcomeDeny, nil
		}
	case "settlement":
		return OutcomeAccept, nil
	case "pending", "authorize":
		return OutcomeIgnore, nil
	case "deny", "cancel", "expire", "failure":
		return OutcomeDeny, nil
	default:
		return OutcomeIgnore, domain.ErrUnknownPaymentStatus
	}
}

// Transition returns the booking transition for o, if any.
func (o Outcome) Transition() (domain.Transition, bool) {
	switch o {
	case OutcomeAccept:
		return domain.TransitionPaymentAccepted, true
	case OutcomeDeny:
		return domain.TransitionPaymentDenied, true
	}
	return "", false
}
