package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed cookie payload that keeps a browser session
// attached to its server-side state between requests.
type SessionClaims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	RoleID  int    `json:"role_id"`
	Session string `json:"session_id"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid session token")

// TokenIssuer signs and parses session tokens with an HS256 secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (t *TokenIssuer) Issue(u User, sessionID string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("session token secret is not set")
	}

	claims := SessionClaims{
		UserID:  u.ID,
		Email:   u.Email,
		RoleID:  u.RoleID(),
		Session: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
