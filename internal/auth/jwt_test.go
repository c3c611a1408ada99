package auth

import (
	"testing"
	"time"

	"github.com/isdelr/chat-relay-be/internal/models"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)
	user := models.User{ID: "user-123", Username: "alice"}

	tok, err := ts.Issue(user)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := ts.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, user.ID)
	}
	if claims.Username != user.Username {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, user.Username)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), -1*time.Second)

	tok, err := ts.Issue(models.User{ID: "u1", Username: "u1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = ts.Verify(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue(models.User{ID: "u2", Username: "u2"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("k"), time.Hour)
	if _, err := ts.Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
