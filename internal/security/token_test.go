package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyvibe/internal/security"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := security.NewTokenService("test-secret", time.Hour)

	token, err := svc.CreateForUser("42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
}

func TestTokenExpired(t *testing.T) {
	svc := security.NewTokenService("test-secret", -time.Minute)

	token, err := svc.CreateForUser("42")
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	signer := security.NewTokenService("secret-a", time.Hour)
	verifier := security.NewTokenService("secret-b", time.Hour)

	token, err := signer.CreateForUser("42")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}
