package security

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// adminSession is one issued login token
type adminSession struct {
	username  string
	role      string
	expiresAt time.Time
}

// SessionStore issues and validates admin login tokens. Tokens are the
// actual session-validity key: a cookie carrying an unknown or expired
// token fails authentication regardless of the other cookies.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]adminSession
	now      func() time.Time
}

// NewSessionStore creates a store whose tokens expire after ttl of
// wall-clock time, independent of activity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]adminSession),
		now:      time.Now,
	}
}

// Issue creates a new random token bound to the given admin identity
func (s *SessionStore) Issue(username, role string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.sessions[token] = adminSession{
		username:  username,
		role:      role,
		expiresAt: s.now().Add(s.ttl),
	}
	return token
}

// Validate reports whether token is a live session for username
func (s *SessionStore) Validate(token, username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return false
	}
	return sess.username == username
}

// Revoke drops a token; revoking an unknown token is a no-op
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// prune drops expired sessions; callers hold the lock
func (s *SessionStore) prune() {
	now := s.now()
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
