package auth

import (
	"errors"
	jwt "github.com/golang-jwt/jwt/v5"
	"playerd/domain"
	"playerd/internal/pkg"
	"time"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 10 * time.Hour

type UserClaim struct {
	ID domain.PlayerID `json:"id"`
}

// Claims is the token payload: {"user":{"id":...},"iat":...,"exp":...}.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

func newClaims(id domain.PlayerID, cl pkg.Clock, ttl time.Duration) Claims {
	now := cl.Now()
	return Claims{
		User: UserClaim{ID: id},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoPlayerID   = errors.New("player id missing in token")
)
