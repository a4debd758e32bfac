package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/choosyapp/choosy-server/internal/domain"
	"github.com/choosyapp/choosy-server/internal/store"
)

// makeTestSession creates a domain.Session with sensible defaults for testing.
func makeTestSession(id, userID, tokenHash string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ClientName:       "choosy-web",
		IPAddress:        "127.0.0.1",
		ExpiresAt:        now.Add(30 * 24 * time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")

	sess := makeTestSession("session-1", "user-1", "hash-abc")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID: got %q, want %q", got.UserID, "user-1")
	}
	if got.RefreshTokenHash != "hash-abc" {
		t.Errorf("RefreshTokenHash: got %q, want %q", got.RefreshTokenHash, "hash-abc")
	}
	if got.ClientName != "choosy-web" {
		t.Errorf("ClientName: got %q, want %q", got.ClientName, "choosy-web")
	}
	if got.ExpiresAt.Unix() != sess.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestGetSessionByRefreshTokenHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")

	sess := makeTestSession("session-1", "user-1", "hash-abc")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSessionByRefreshTokenHash(ctx, "hash-abc")
	if err != nil {
		t.Fatalf("GetSessionByRefreshTokenHash: %v", err)
	}
	if got.ID != "session-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "session-1")
	}

	_, err = s.GetSessionByRefreshTokenHash(ctx, "hash-unknown")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSession_Rotation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")

	sess := makeTestSession("session-1", "user-1", "hash-old")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// Rotate the refresh token.
	sess.RefreshTokenHash = "hash-new"
	sess.Touch()
	if err := s.UpdateSession(ctx, sess); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	// Old token no longer resolves; new one does.
	_, err := s.GetSessionByRefreshTokenHash(ctx, "hash-old")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old token should not resolve, got %v", err)
	}
	got, err := s.GetSessionByRefreshTokenHash(ctx, "hash-new")
	if err != nil {
		t.Fatalf("GetSessionByRefreshTokenHash: %v", err)
	}
	if got.ID != "session-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "session-1")
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")

	sess := makeTestSession("session-1", "user-1", "hash-abc")
	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "session-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	_, err := s.GetSession(ctx, "session-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Deleting again reports not found.
	err = s.DeleteSession(ctx, "session-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")

	live := makeTestSession("session-live", "user-1", "hash-live")
	if err := s.CreateSession(ctx, live); err != nil {
		t.Fatalf("CreateSession live: %v", err)
	}

	expired := makeTestSession("session-expired", "user-1", "hash-expired")
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	if err := s.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession expired: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	if _, err := s.GetSession(ctx, "session-live"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
	if _, err := s.GetSession(ctx, "session-expired"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expired session should be gone, got %v", err)
	}
}

func TestGetSessionsByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-1", "alice")
	mustCreateUser(t, s, "user-2", "bob")

	for i, id := range []string{"session-1", "session-2"} {
		sess := makeTestSession(id, "user-1", "hash-"+id)
		sess.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := s.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession %s: %v", id, err)
		}
	}
	other := makeTestSession("session-bob", "user-2", "hash-bob")
	if err := s.CreateSession(ctx, other); err != nil {
		t.Fatalf("CreateSession bob: %v", err)
	}

	sessions, err := s.GetSessionsByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetSessionsByUser: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, sess := range sessions {
		if sess.UserID != "user-1" {
			t.Errorf("session %s belongs to %s", sess.ID, sess.UserID)
		}
	}
}
