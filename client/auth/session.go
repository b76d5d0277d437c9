// Package auth manages the client's account flows and the signed-in
// session consumed by the rest of the client.
package auth

import (
	"sync"

	"github.com/google/uuid"

	models "challengeme/model"
)

// Session holds the signed-in user and their tokens. One instance lives
// per app session and is injected into the managers that need the
// current user id.
type Session struct {
	mu           sync.Mutex
	user         *models.User
	accessToken  string
	refreshToken string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) begin(user models.User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// Clear forgets the signed-in user, as on logout or a rejected token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
}

func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// UserID returns the signed-in user's id, or uuid.Nil when signed out.
func (s *Session) UserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return uuid.Nil
	}
	return s.user.ID
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the access token for outgoing requests.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}
