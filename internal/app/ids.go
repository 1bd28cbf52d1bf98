package app

import (
	"strings"

	"github.com/google/uuid"
)

func newBookingUID() string {
	return uuid.NewString()
}

// normalizeUID returns the canonical form of a client supplied uid.
// Malformed input is reported as absent so lookups never reach storage.
func normalizeUID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
