package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dixheptagon/property-renting-app-api-sub001/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Claims carries the caller identity. Subject holds the numeric user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type principalKey struct{}

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller set by the auth middleware, or the zero
// Principal, which every guarded operation rejects.
func PrincipalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalKey{}).(domain.Principal)
	return p
}

// Authenticator verifies HS256 bearer tokens.
type Authenticator struct {
	secret []byte
	log    logrus.FieldLogger
}

func NewAuthenticator(secret string, log logrus.FieldLogger) *Authenticator {
	return &Authenticator{secret: []byte(secret), log: log}
}

// Issue signs a token for p. Used by tooling and tests; production tokens
// come from the identity service sharing the secret.
func (a *Authenticator) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(raw string) (domain.Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Principal{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Principal{}, errors.New("invalid token claims")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("subject %q: %w", claims.Subject, err)
	}
	p := domain.Principal{UserID: id, Role: domain.Role(claims.Role)}
	if !p.Valid() {
		return domain.Principal{}, errors.New("unknown role or user")
	}
	return p, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "bearer token required")
			return
		}
		p, err := a.parse(strings.TrimSpace(raw))
		if err != nil {
			a.log.WithError(err).WithField("path", r.URL.Path).Warn("rejected bearer token")
			writeError(w, http.StatusUnauthorized, codeInvalidToken, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}
