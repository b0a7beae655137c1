package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "classsnap-test"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	pair, err := Issue(42, testIssuer, testKey, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := Parse(pair.AccessToken, testKey, testIssuer, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, TypeAccess, claims.TokenType)

	id, err := claims.TeacherID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	refreshClaims, err := Parse(pair.RefreshToken, testKey, testIssuer, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, refreshClaims.TokenType)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	pair, err := Issue(1, testIssuer, testKey, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	// A refresh token must never pass as an access token, and vice versa.
	_, err = Parse(pair.RefreshToken, testKey, testIssuer, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Parse(pair.AccessToken, testKey, testIssuer, TypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue(1, testIssuer, testKey, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, "other-key", testIssuer, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	pair, err := Issue(1, "someone-else", testKey, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, testKey, testIssuer, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not-a-token", testKey, testIssuer, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	expiresAt := issuedAt.Add(15 * time.Minute)

	token, err := sign("7", TypeAccess, testIssuer, testKey, issuedAt, expiresAt)
	require.NoError(t, err)

	// One second before expiry the token is still good.
	before := func() time.Time { return expiresAt.Add(-time.Second) }
	_, err = parseAt(token, testKey, testIssuer, TypeAccess, before)
	assert.NoError(t, err)

	// From the expiry instant onward it is rejected as expired.
	at := func() time.Time { return expiresAt }
	_, err = parseAt(token, testKey, testIssuer, TypeAccess, at)
	assert.ErrorIs(t, err, ErrTokenExpired)

	after := func() time.Time { return expiresAt.Add(time.Hour) }
	_, err = parseAt(token, testKey, testIssuer, TypeAccess, after)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	expiresAt := issuedAt.Add(7 * 24 * time.Hour)

	token, err := sign("7", TypeRefresh, testIssuer, testKey, issuedAt, expiresAt)
	require.NoError(t, err)

	before := func() time.Time { return expiresAt.Add(-time.Second) }
	_, err = parseAt(token, testKey, testIssuer, TypeRefresh, before)
	assert.NoError(t, err)

	at := func() time.Time { return expiresAt }
	_, err = parseAt(token, testKey, testIssuer, TypeRefresh, at)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTeacherIDRejectsBadSubjects(t *testing.T) {
	for _, sub := range []string{"", "abc", "-3", "0"} {
		claims := Claims{}
		claims.Subject = sub
		_, err := claims.TeacherID()
		assert.ErrorIs(t, err, ErrInvalidToken, "subject %q", sub)
	}
}
