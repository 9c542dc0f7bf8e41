package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzalab/pizza-service/internal/repository"
	"github.com/pizzalab/pizza-service/internal/token"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestAuth() (*AuthService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	tokens := token.NewService("test-secret", 15*time.Minute, 720*time.Hour)
	return NewAuthService(store, tokens, testLogger()), store
}

func TestSignupCreatesUser(t *testing.T) {
	svc, store := newTestAuth()
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter2secret", user.PasswordHash)

	stored, err := store.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "shared@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	// Novel username, reused email
	_, err = svc.Signup(ctx, "bob", "shared@example.com", "hunter2secret", true, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	// Novel email, reused username
	_, err = svc.Signup(ctx, "alice", "alice2@example.com", "hunter2secret", true, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	access, refresh, err := svc.Login(ctx, "alice", "hunter2secret")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	user, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "alice", "not the password")
	_, _, noSuchUser := svc.Login(ctx, "mallory", "hunter2secret")

	assert.ErrorIs(t, wrongPassword, ErrAuthFailed)
	assert.ErrorIs(t, noSuchUser, ErrAuthFailed)
	assert.Equal(t, wrongPassword.Error(), noSuchUser.Error())
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	_, refresh, err := svc.Login(ctx, "alice", "hunter2secret")
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	access, _, err := svc.Login(ctx, "alice", "hunter2secret")
	require.NoError(t, err)

	_, err = svc.Refresh(access)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter2secret", true, false)
	require.NoError(t, err)

	_, refresh, err := svc.Login(ctx, "alice", "hunter2secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, refresh)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateRejectsUnknownSubject(t *testing.T) {
	store := repository.NewMemoryStore()
	tokens := token.NewService("test-secret", 15*time.Minute, 720*time.Hour)
	svc := NewAuthService(store, tokens, testLogger())

	// Valid token whose subject was never registered
	access, err := tokens.IssueAccess("ghost")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), access)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
