package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/edusight/internal/dto"
)

// sessionClaims wraps the persisted User in a signed token. No expiry claim
// is set: a persisted session is trusted until explicit logout, but the
// signature makes local tampering detectable.
type sessionClaims struct {
	User dto.User `json:"user"`
	jwt.RegisteredClaims
}

func encodeSession(user *dto.User, secret []byte) (string, error) {
	claims := sessionClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func decodeSession(raw string, secret []byte) (*dto.User, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session claims")
	}
	if claims.User.ID == 0 || claims.User.Role == "" {
		return nil, errors.New("incomplete session claims")
	}

	return &claims.User, nil
}
