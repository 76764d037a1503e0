package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravets/newsline/internal/api"
)

// GuestUserID is the sentinel identity used for interaction events
// when nobody is logged in and no cached user id survives.
const GuestUserID = "guest_user"

// state is the durable form of the session. The three fields mirror
// what the backend hands out on login and are always written and
// cleared together.
type state struct {
	User        *api.Identity `json:"user,omitempty"`
	AccessToken string        `json:"access_token,omitempty"`
	UserID      string        `json:"user_id,omitempty"`
}

// Store is the single source of truth for who is using the client.
// It owns the session file; nothing else reads or writes it. Not safe
// for concurrent use; the TUI drives it from a single goroutine.
type Store struct {
	path         string
	identity     *api.Identity
	cachedUserID string
}

// NewStore creates a store backed by the given file. Call Restore to
// hydrate it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Restore reads the session file. Corrupt or absent storage is treated
// as logged out, never as an error.
func (s *Store) Restore() {
	s.identity = nil
	s.cachedUserID = ""

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return
	}
	if st.User != nil && st.User.UserID != "" {
		s.identity = st.User
	}
	s.cachedUserID = st.UserID
}

// SetIdentity persists a new identity, or clears everything when id is
// nil. This one entry point covers both "login succeeded" and
// "log out".
func (s *Store) SetIdentity(id *api.Identity) error {
	if id == nil || id.UserID == "" {
		s.identity = nil
		s.cachedUserID = ""
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clearing session: %w", err)
		}
		return nil
	}

	st := state{User: id, AccessToken: id.AccessToken, UserID: id.UserID}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	s.identity = id
	s.cachedUserID = id.UserID
	return nil
}

// Logout clears the session.
func (s *Store) Logout() error {
	return s.SetIdentity(nil)
}

// Current returns the live identity, or nil when logged out.
func (s *Store) Current() *api.Identity {
	return s.identity
}

// IsAuthenticated is derived from the identity; it is never stored.
func (s *Store) IsAuthenticated() bool {
	return s.identity != nil
}

// UserID resolves the identity for outgoing events: live identity
// first, then the durably cached user id, then the guest sentinel.
func (s *Store) UserID() string {
	if s.identity != nil && s.identity.UserID != "" {
		return s.identity.UserID
	}
	if s.cachedUserID != "" {
		return s.cachedUserID
	}
	return GuestUserID
}

// AccessToken returns the current bearer token, or "".
func (s *Store) AccessToken() string {
	if s.identity == nil {
		return ""
	}
	return s.identity.AccessToken
}

// TokenExpiry decodes the stored JWT without verifying it and returns
// its expiry. The client never validates tokens; this exists only so
// the profile view can show when a re-login will be needed.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
