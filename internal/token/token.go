// Package token issues and verifies the bearer credentials used by the API.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("token signing secret is required")
	ErrExpired       = errors.New("token expired")
	ErrInvalid       = errors.New("token invalid")
)

// Issuer signs and verifies HS256 bearer tokens carrying the user id as the
// subject claim. Tokens carry no expiry unless a TTL is configured.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

func (i *Issuer) Sign(userID snowflake.ID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
	}
	if i.ttl > 0 {
		claims["exp"] = time.Now().Add(i.ttl).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses the raw token and returns the subject user id. Expired
// credentials report ErrExpired; any other failure reports ErrInvalid.
func (i *Issuer) Verify(raw string) (snowflake.ID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrInvalid
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return 0, ErrInvalid
	}
	userID, err := snowflake.ParseString(subject)
	if err != nil {
		return 0, ErrInvalid
	}
	return userID, nil
}
