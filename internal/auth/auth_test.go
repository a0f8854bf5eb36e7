package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.IssueToken("alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").IssueToken("alice@x.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc := NewTokenService("test-secret")
	token, err := svc.IssueToken("alice@x.com")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	token, err := svc.IssueToken("alice@x.com")
	require.NoError(t, err)
	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	ctx := ContextWithClaims(context.Background(), claims)
	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice@x.com", got.Email)
}
