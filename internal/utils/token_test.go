package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "sess-123", "zauberfloete", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.True(t, tok.Exp.After(time.Now()))

	claims, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", claims.SessionID)
	assert.Equal(t, "zauberfloete", claims.ShowID)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", "sess-123", "zauberfloete", 30*time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	tok, err := NewSessionToken("secret", "sess-123", "zauberfloete", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ParseSessionToken("secret", raw)
		assert.ErrorIs(t, err, ErrInvalidSessionToken, "token %q", raw)
	}
}
