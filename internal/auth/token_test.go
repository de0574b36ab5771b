package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService("super-secret", 0)
	require.NoError(t, err)
	return svc.WithClock(func() time.Time { return now })
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, issued)

	tok, err := svc.Issue(42, "ada")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := newTestTokenService(t, issued).Issue(7, "bob")
	require.NoError(t, err)

	for _, at := range []time.Time{
		issued.Add(DefaultTokenTTL),
		issued.Add(DefaultTokenTTL + time.Second),
		issued.Add(30 * 24 * time.Hour),
	} {
		_, err := newTestTokenService(t, at).Verify(tok)
		assert.ErrorIs(t, err, ErrTokenExpired, "verify at %s", at)
		assert.NotErrorIs(t, err, ErrTokenInvalid)
	}

	_, err = newTestTokenService(t, issued.Add(DefaultTokenTTL-time.Second)).Verify(tok)
	assert.NoError(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := newTestTokenService(t, now).Issue(1, "u")
	require.NoError(t, err)

	other, err := NewTokenService("another-secret", 0)
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Now())
	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", raw)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = newTestTokenService(t, now).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRequiresUserID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := newTestTokenService(t, now).Issue(0, "ghost")
	require.NoError(t, err)

	_, err = newTestTokenService(t, now).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("  ", time.Hour)
	assert.Error(t, err)
}
