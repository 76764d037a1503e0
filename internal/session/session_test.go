package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkravets/newsline/internal/api"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestRoundTrip(t *testing.T) {
	path := storePath(t)

	s := NewStore(path)
	id := &api.Identity{UserID: "alice", Email: "alice@example.com", AccessToken: "tok123"}
	if err := s.SetIdentity(id); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}

	restored := NewStore(path)
	restored.Restore()

	if !restored.IsAuthenticated() {
		t.Fatal("expected restored store to be authenticated")
	}
	if got := restored.Current().UserID; got != "alice" {
		t.Errorf("UserID = %q, want alice", got)
	}
	if got := restored.AccessToken(); got != "tok123" {
		t.Errorf("AccessToken = %q, want tok123", got)
	}
	if got := restored.UserID(); got != "alice" {
		t.Errorf("UserID() = %q, want alice", got)
	}
}

func TestFilePermissions(t *testing.T) {
	path := storePath(t)
	s := NewStore(path)
	if err := s.SetIdentity(&api.Identity{UserID: "alice", AccessToken: "t"}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestLogoutRemovesFile(t *testing.T) {
	path := storePath(t)
	s := NewStore(path)
	if err := s.SetIdentity(&api.Identity{UserID: "alice"}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected session file to be removed, stat err = %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected logged out state")
	}
	if got := s.UserID(); got != GuestUserID {
		t.Errorf("UserID after logout = %q, want %q", got, GuestUserID)
	}
}

func TestLogoutWhenAlreadyLoggedOut(t *testing.T) {
	s := NewStore(storePath(t))
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout on empty store: %v", err)
	}
}

func TestRestoreCorruptFile(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Restore()

	if s.IsAuthenticated() {
		t.Error("corrupt file should restore as logged out")
	}
	if got := s.UserID(); got != GuestUserID {
		t.Errorf("UserID = %q, want guest", got)
	}
}

func TestRestoreMissingFile(t *testing.T) {
	s := NewStore(storePath(t))
	s.Restore()
	if s.IsAuthenticated() {
		t.Error("missing file should restore as logged out")
	}
}

func TestCachedUserIDSurvivesPartialState(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte(`{"user_id":"bob"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Restore()

	if s.IsAuthenticated() {
		t.Error("user_id alone should not authenticate")
	}
	if got := s.UserID(); got != "bob" {
		t.Errorf("UserID = %q, want bob (cached id has precedence over guest)", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	s := NewStore(storePath(t))

	// exp = 2000000000 (2033-05-18)
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJhbGljZSIsImV4cCI6MjAwMDAwMDAwMH0." +
		"signature-is-not-checked"
	if err := s.SetIdentity(&api.Identity{UserID: "alice", AccessToken: token}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}

	exp, ok := s.TokenExpiry()
	if !ok {
		t.Fatal("expected expiry from valid JWT")
	}
	if got := exp.Unix(); got != 2000000000 {
		t.Errorf("expiry = %d, want 2000000000", got)
	}
}

func TestTokenExpiryGarbageToken(t *testing.T) {
	s := NewStore(storePath(t))
	if err := s.SetIdentity(&api.Identity{UserID: "alice", AccessToken: "not-a-jwt"}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	if _, ok := s.TokenExpiry(); ok {
		t.Error("expected no expiry for a malformed token")
	}
}
