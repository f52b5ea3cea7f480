package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaims(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	tok := signed(t, jwt.MapClaims{
		"sub":       "alice",
		"type":      "access",
		"exp":       exp.Unix(),
		"user_data": map[string]any{"id": 9007199254740993},
	})

	c, err := ParseClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Subject)
	assert.Equal(t, "access", c.Type)
	assert.Equal(t, "9007199254740993", UserIDFromToken(tok), "large ids survive as json.Number")

	got, ok := ExpiryFromToken(tok)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestClaims_OpaqueToken(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	require.Error(t, err)

	assert.Empty(t, UserIDFromToken("not-a-jwt"))
	_, ok := ExpiryFromToken("not-a-jwt")
	assert.False(t, ok)
}

func TestClaims_StringUserID(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"user_data": map[string]any{"id": "u-1"}})
	assert.Equal(t, "u-1", UserIDFromToken(tok))

	_, ok := ExpiryFromToken(tok)
	assert.False(t, ok)
}
