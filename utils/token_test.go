package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(raw, "."))

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)

	other, err := tokens.Issue(42)
	require.NoError(t, err)
	otherClaims, err := tokens.Parse(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID, "every token gets its own id")
}

func TestTokensDefaultTTL(t *testing.T) {
	tokens := NewTokens("secret", 0)
	assert.Equal(t, DefaultTokenTTL, tokens.ttl)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := tokens.Issue(1)
	require.NoError(t, err)
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	raw, err := NewTokens("other-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokens("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingClaims(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return raw
	}
	exp := time.Now().Add(time.Hour).Unix()
	tokens := NewTokens("secret", time.Hour)

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "no user", claims: jwt.MapClaims{"jti": "a", "exp": exp}},
		{name: "string user", claims: jwt.MapClaims{"user_id": "1", "jti": "a", "exp": exp}},
		{name: "no jti", claims: jwt.MapClaims{"user_id": 1, "exp": exp}},
		{name: "no expiry", claims: jwt.MapClaims{"user_id": 1, "jti": "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Parse(sign(tt.claims))
			assert.ErrorIs(t, err, ErrTokenPayload)
		})
	}
}
