package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestSignerRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSignerWithClock("test-secret", fixedClock(now))

	tok, err := s.Sign(7, "ada@example.com", "USER", PurposeSession, time.Hour)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), tok.Exp)

	claims, err := s.Verify(tok.Token, PurposeSession)
	require.NoError(t, err)
	require.Equal(t, uint64(7), claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, "USER", claims.Role)
	require.NotEmpty(t, claims.TokenID)
	require.Equal(t, tok.Exp, claims.Exp)
}

func TestSignerRejectsCrossedPurpose(t *testing.T) {
	s := NewSigner("test-secret")

	session, err := s.Sign(7, "ada@example.com", "USER", PurposeSession, time.Hour)
	require.NoError(t, err)
	_, err = s.Verify(session.Token, PurposeReset)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	reset, err := s.Sign(7, "", "", PurposeReset, time.Hour)
	require.NoError(t, err)
	_, err = s.Verify(reset.Token, PurposeSession)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestSignerRejectsExpiredToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSignerWithClock("test-secret", func() time.Time { return now })

	tok, err := s.Sign(7, "ada@example.com", "USER", PurposeSession, time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(tok.Token, PurposeSession)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Verify(tok.Token, PurposeSession)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestSignerRejectsForeignSecret(t *testing.T) {
	a := NewSigner("secret-a")
	b := NewSigner("secret-b")

	tok, err := a.Sign(7, "ada@example.com", "USER", PurposeSession, time.Hour)
	require.NoError(t, err)

	_, err = b.Verify(tok.Token, PurposeSession)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestSignerRejectsGarbage(t *testing.T) {
	s := NewSigner("test-secret")
	_, err := s.Verify("not.a.token", PurposeSession)
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}
