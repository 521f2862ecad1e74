// Package session holds the in-memory authentication state of the client:
// the access/refresh token pair and the authenticated user's profile.
//
// The session is the single source of truth for credential state. It is
// mutated only by the API gateway (token refresh) and by the auth service
// (login, logout, profile fetch). It performs no I/O and never blocks.
package session

import (
	"sync"

	"github.com/ameleshko/booklog-cli/internal/client/models"
)

// Session is a process-lifetime record of the current identity and
// credentials. The zero state is "anonymous". Construct one per client;
// tests construct isolated sessions per case.
//
// Invariants kept by the mutation methods:
//   - the access and refresh tokens are always set and cleared together;
//   - a user profile is never retained without tokens (Clear drops both).
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *models.User
	subs         []func()
}

func New() *Session {
	return &Session{}
}

// SetCredentials stores a new token pair atomically. Both tokens must be
// non-empty; the user profile is left untouched.
func (s *Session) SetCredentials(accessToken, refreshToken string) {
	s.mu.Lock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.mu.Unlock()
	s.notify()
}

// SetUser stores the authenticated user's profile.
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
}

// Clear resets the session to the anonymous state. Calling it on an empty
// session is a no-op, observers included.
func (s *Session) Clear() {
	s.mu.Lock()
	empty := s.accessToken == "" && s.refreshToken == "" && s.user == nil
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	s.mu.Unlock()
	if !empty {
		s.notify()
	}
}

// AccessToken returns the held access token, if any.
func (s *Session) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.accessToken != ""
}

// RefreshToken returns the held refresh token, if any.
func (s *Session) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken, s.refreshToken != ""
}

// User returns the authenticated user's profile, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user profile is present.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// Subscribe registers fn to run after every observable state change.
// Subscribers must not mutate the session from the callback.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
