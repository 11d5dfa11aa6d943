package service

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionSigner(t *testing.T) {
	signer := NewSessionSigner("secret")

	assert.NotNil(t, signer)
	assert.Equal(t, "secret", signer.secret)
}

func TestNewSessionID(t *testing.T) {
	first, err := NewSessionID()
	require.NoError(t, err)
	second, err := NewSessionID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	raw, err := base64.RawURLEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestSessionSigner_SignAndVerify(t *testing.T) {
	signer := NewSessionSigner("b8a3c2267dc85f855dea9b46b452bf20")

	t.Run("round trip", func(t *testing.T) {
		value, err := signer.Sign("session-1")
		require.NoError(t, err)
		assert.NotEqual(t, "session-1", value)

		sessionID, err := signer.Verify(value)
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("empty session id", func(t *testing.T) {
		value, err := signer.Sign("")
		assert.Error(t, err)
		assert.Empty(t, value)
	})
}

func TestSessionSigner_Verify(t *testing.T) {
	signer := NewSessionSigner("secret")

	otherSigned, err := NewSessionSigner("other-secret").Sign("session-1")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": "session-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	missingSid, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"iat": 1}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{name: "garbage", value: "not-a-token"},
		{name: "empty", value: ""},
		{name: "signed with another secret", value: otherSigned},
		{name: "unsigned token", value: noneToken},
		{name: "missing sid claim", value: missingSid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionID, err := signer.Verify(tt.value)
			assert.Error(t, err)
			assert.Empty(t, sessionID)
		})
	}
}
