package auth

import (
	"context"
	"testing"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	token, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	userID, err := NewJWTVerifier(secret).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := GenerateToken("u1", secret, -time.Second)
	require.NoError(t, err)

	_, err = NewJWTVerifier(secret).Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = NewJWTVerifier([]byte("wrong-secret")).Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewJWTVerifier([]byte("k")).Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
