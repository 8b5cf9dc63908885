package auth

import (
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"log/slog"
	"playerd/domain"
	"playerd/internal/pkg"
	"time"
)

type Service struct {
	secretKey []byte
	ttl       time.Duration
	log       *slog.Logger
	cl        pkg.Clock
}

func NewService(log *slog.Logger, secret string, ttl time.Duration, cl pkg.Clock) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secretKey: []byte(secret),
		ttl:       ttl,
		log:       log,
		cl:        cl,
	}
}

// IssueToken signs an HS256 token carrying only the player's storage id.
func (s *Service) IssueToken(id domain.PlayerID) (string, error) {
	const op = "auth.IssueToken"

	claims := newClaims(id, s.cl, s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		s.log.Error("failed to generate JWT", "op", op, "id", id, "error", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("token issued", "op", op, "id", id, "expires", claims.ExpiresAt.Time)
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the player id inside.
// The registration routes never call it; it is here for services that
// consume the tokens.
func (s *Service) ParseToken(tokenString string) (domain.PlayerID, error) {
	const op = "auth.ParseToken"

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.log.Warn("unexpected signing method", "op", op, "method", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.cl.Now), jwt.WithExpirationRequired())
	if err != nil {
		s.log.Debug("failed to parse token", "op", op, "error", err)
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.User.ID == "" {
		return "", ErrNoPlayerID
	}
	return claims.User.ID, nil
}
