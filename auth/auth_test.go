package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"playerd/domain"
	"playerd/internal/logger"
	"playerd/internal/pkg"
	"testing"
	"time"
)

func newTestService(secret string) (*Service, *pkg.FixedClock) {
	cl := &pkg.FixedClock{T: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(logger.Nop(), secret, DefaultTTL, cl), cl
}

func TestIssueTokenRoundTrip(t *testing.T) {
	s, _ := newTestService("secret")

	token, err := s.IssueToken("abc-123")
	require.NoError(t, err)

	id, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerID("abc-123"), id)
}

func TestIssueTokenPayloadShape(t *testing.T) {
	s, cl := newTestService("secret")

	token, err := s.IssueToken("abc-123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok, "user claim missing")
	assert.Equal(t, "abc-123", user["id"])

	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, cl.T.Unix(), iat.Unix())
	assert.Equal(t, 10*time.Hour, exp.Sub(iat.Time))
}

func TestParseTokenExpired(t *testing.T) {
	s, cl := newTestService("secret")

	token, err := s.IssueToken("abc-123")
	require.NoError(t, err)

	cl.Advance(10*time.Hour + time.Second)
	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	s, _ := newTestService("secret")
	other, _ := newTestService("other")

	token, err := s.IssueToken("abc-123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	s, _ := newTestService("secret")

	_, err := s.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewServiceDefaultsTTL(t *testing.T) {
	s := NewService(logger.Nop(), "secret", 0, pkg.NormalClock{})
	assert.Equal(t, DefaultTTL, s.ttl)
}
