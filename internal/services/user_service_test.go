package services

import (
	"errors"
	"testing"

	"github.com/isdelr/chat-relay-be/internal/models"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	user, err := svc.CreateUser("alice", "alice@x.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)

	got, err := svc.AuthenticateUser("alice", "secret")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Empty(t, got.PasswordHash)
}

func TestUserService_DuplicateIdentity(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("alice", "alice@x.com", "secret")
	require.NoError(t, err)

	// Same username, different email.
	_, err = svc.CreateUser("alice", "other@x.com", "secret")
	require.ErrorIs(t, err, models.ErrDuplicateIdentity)

	// Same email, different username.
	_, err = svc.CreateUser("bob", "alice@x.com", "secret")
	require.ErrorIs(t, err, models.ErrDuplicateIdentity)
}

func TestUserService_AuthenticateFailures(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("alice", "alice@x.com", "secret")
	require.NoError(t, err)

	// Wrong password and unknown user are indistinguishable.
	_, err = svc.AuthenticateUser("alice", "wrong")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.AuthenticateUser("nobody", "secret")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	t.Parallel()
	svc := NewUserService(newTestDB(t))

	_, err := svc.GetUserByID("missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
