package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gestion-astreinte-backend/internal/model"
)

// ErrInvalidToken is returned for any token that fails parsing, signature
// verification, or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity the middleware needs for role scoping.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	ServiceID *int64 `json:"service_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new bearer token for the given user.
func (m *TokenManager) Issue(u model.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    u.ID,
		Role:      u.Role,
		ServiceID: u.ServiceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a bearer token and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
