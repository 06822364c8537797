package movies

import "sync"

// Session holds the identity of the logged in user. It is created by the
// caller and passed to every authenticated client call.
type Session struct {
	mu       sync.RWMutex
	token    string
	username string
}

// NewSession returns a logged out session.
func NewSession() *Session {
	return &Session{}
}

// IsLoggedIn reports whether a token is held.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Credentials returns the username and token.
func (s *Session) Credentials() (username, token string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.token
}

// Username returns the logged in user, or "".
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Logout forgets the token and username.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
}

func (s *Session) set(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.token = token
}
