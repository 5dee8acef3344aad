// Package auth issues and verifies the signed, expiring tokens the admin
// console presents on every admin-route request.
//
// Credential verification happens server-side (bcrypt hash in the users
// collection); the token is an HS256 JWT carried as a Bearer header.
// Public marketing reads and the lead forms never touch this package.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/coursecms/internal/app/system/jsonutil"
	"github.com/dalemusser/coursecms/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MinSecretLength guards against trivially brute-forceable signing keys.
const MinSecretLength = 32

// Claims is the token payload: standard registered claims plus the admin's
// email and role for request-time checks without a user lookup.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewTokenManager builds a TokenManager. The secret must be strong; short
// secrets abort startup rather than run insecurely.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, errors.New("auth token secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, logger: logger}, nil
}

// Issue creates a signed token for the given admin user.
func (m *TokenManager) Issue(user models.AdminUser) (token string, expires time.Time, err error) {
	now := time.Now().UTC()
	expires = now.Add(m.ttl)

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify parses and validates a token string, returning its claims.
// Expired, malformed, or wrongly signed tokens all fail.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// claimsKey is the context key for the verified admin claims.
type claimsKey struct{}

// RequireAdmin validates the Bearer token and requires the admin role before
// passing the request through. Failures get the standard failure envelope.
func (m *TokenManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Test hook: claims injected directly into the context.
		if claims, ok := r.Context().Value(claimsKey{}).(*Claims); ok && claims != nil {
			if claims.Role != models.RoleAdmin {
				jsonutil.Fail(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			jsonutil.Unauthorized(w, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			jsonutil.Unauthorized(w, "Invalid Authorization format (expected: Bearer <token>)")
			return
		}

		claims, err := m.Verify(parts[1])
		if err != nil {
			m.logger.Debug("admin token rejected",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			jsonutil.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.Role != models.RoleAdmin {
			m.logger.Warn("non-admin token on admin route",
				zap.String("path", r.URL.Path),
				zap.String("subject", claims.Subject),
			)
			jsonutil.Fail(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// CurrentClaims returns the verified claims for the request, if any.
func CurrentClaims(r *http.Request) (*Claims, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// WithTestClaims injects claims into the request context, bypassing token
// verification. Test use only.
func WithTestClaims(r *http.Request, claims *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
}
