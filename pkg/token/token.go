package token

import (
	"errors"
	"strconv"
	"time"

	"socialgraph/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was valid once but its lifetime has passed.
	ErrExpired = errors.New("token expired")
	// ErrMalformed means the token is not structurally a JWT.
	ErrMalformed = errors.New("token malformed")
	// ErrInvalidSignature means the token was signed with a different secret.
	ErrInvalidSignature = errors.New("token signature invalid")
)

// Issue creates a signed token for a user ID. The issuer is TTL-agnostic:
// callers pass the access or refresh lifetime from configuration.
func Issue(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(config.AppConfig.JWTSecret))
}

// Verify checks a token's signature and expiry and returns the user ID it
// was issued for.
func Verify(tokenString string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		default:
			return 0, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, ErrMalformed
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, ErrMalformed
	}
	return uint(id), nil
}
