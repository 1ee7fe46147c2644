package auth

import (
	"testing"
	"time"

	"scribe/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("super-secret"), time.Hour).WithClock(fixedClock(t0))

	for _, subject := range []string{"a@x.com", "user-123", "ü@example.org"} {
		for _, ttl := range []time.Duration{time.Second, time.Minute, 24 * time.Hour} {
			tok, err := svc.Issue(subject, ttl)
			require.NoError(t, err)

			got, err := svc.Verify(tok)
			require.NoError(t, err)
			assert.Equal(t, subject, got)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenService([]byte("secret"), 0).WithClock(fixedClock(t0))

	for _, ttl := range []time.Duration{time.Second, time.Minute, 0} {
		tok, err := issuer.Issue("u1", ttl)
		require.NoError(t, err)

		effective := ttl
		if effective <= 0 {
			effective = DefaultTokenTTL
		}
		atExpiry := issuer.WithClock(fixedClock(t0.Add(effective)))
		_, err = atExpiry.Verify(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "ttl %s at expiry", ttl)

		later := issuer.WithClock(fixedClock(t0.Add(effective + time.Hour)))
		_, err = later.Verify(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "ttl %s after expiry", ttl)

		before := issuer.WithClock(fixedClock(t0.Add(effective - time.Second/2)))
		_, err = before.Verify(tok)
		assert.NoError(t, err, "ttl %s before expiry", ttl)
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService([]byte("k"), 0).WithClock(fixedClock(t0))
	tok, err := svc.Issue("s", 0)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(30*time.Minute), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, t0, claims.IssuedAt.Time.UTC())
	assert.Equal(t, "s", claims.Subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("u2", 0)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewTokenService([]byte("k"), time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	secret := []byte("k")
	svc := NewTokenService(secret, time.Hour)
	claims := jwt.RegisteredClaims{Subject: "s", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RequiresExpiryAndSubject(t *testing.T) {
	secret := []byte("k")
	svc := NewTokenService(secret, time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "s"}).SignedString(secret)
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	noSub, err := svc.Issue("", time.Hour)
	require.NoError(t, err)
	_, err = svc.Verify(noSub)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
