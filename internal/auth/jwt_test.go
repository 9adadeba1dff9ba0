package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	manager, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := manager.Generate(42, "session-1")
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestVerifyRejects(t *testing.T) {
	manager, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Generate(42, "session-1")
	require.NoError(t, err)

	_, err = manager.Verify(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Verify("not a token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	issued := time.Now()
	manager.now = func() time.Time { return issued }
	expiring, err := manager.Generate(42, "session-1")
	require.NoError(t, err)

	manager.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = manager.Verify(expiring)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42, SessionID: "s"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)

	manager, err := NewTokenManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, manager.TTL())
}
