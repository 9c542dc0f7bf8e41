package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("test-secret", 15*time.Minute, 720*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.IssueAccess("alice")
	require.NoError(t, err)

	subject, err := svc.VerifyAccess(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.IssueRefresh("bob")
	require.NoError(t, err)

	subject, err := svc.VerifyRefresh(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "bob", subject)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestService()

	access, err := svc.IssueAccess("alice")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("alice")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, -time.Minute)

	access, err := svc.IssueAccess("alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.IssueAccess("alice")
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = svc.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	tokenString, err := newTestService().IssueAccess("alice")
	require.NoError(t, err)

	other := NewService("other-secret", 15*time.Minute, 720*time.Hour)
	_, err = other.VerifyAccess(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestService()

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
