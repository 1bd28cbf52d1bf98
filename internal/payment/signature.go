package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Verifier authenticates gateway notifications with the shared server key.
type Verifier struct {
	serverKey string
}

func NewVerifier(serverKey string) *Verifier {
	return &Verifier{serverKey: serverKey}
}

// Sign returns the hex SHA-512 of orderUID || statusCode || grossAmount || serverKey.
func (v *Verifier) Sign(orderUID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderUID + statusCode + grossAmount + v.serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether signature matches the notification fields.
func (v *Verifier) Verify(orderUID, statusCode, grossAmount, signature string) bool {
	if v.serverKey == "" || signature == "" {
		return false
	}
	expected := v.Sign(orderUID, statusCode, grossAmount)
	got := strings.ToLower(strings.TrimSpace(signature))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
