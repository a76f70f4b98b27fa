package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SessionState is the lifecycle state of a courier API session token.
type SessionState int

const (
	SessionUnauthenticated SessionState = iota
	SessionAuthenticated
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// refreshMargin is how long before expiry a token is already treated as expired.
const refreshMargin = 5 * time.Minute

// loginFunc obtains a fresh token and the time it stops being valid.
type loginFunc func(ctx context.Context) (token string, expiresAt time.Time, err error)

// tokenSession caches one courier API token per adapter instance.
// The mutex is held across login so concurrent rate requests never log in twice.
type tokenSession struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	login     loginFunc
	now       func() time.Time
}

func newTokenSession(login loginFunc) *tokenSession {
	return &tokenSession{
		login: login,
		now:   time.Now,
	}
}

// State reports the current lifecycle state.
func (s *tokenSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *tokenSession) stateLocked() SessionState {
	if s.token == "" {
		return SessionUnauthenticated
	}
	if !s.now().Before(s.expiresAt.Add(-refreshMargin)) {
		return SessionExpired
	}
	return SessionAuthenticated
}

// Token returns a valid token, logging in first when unauthenticated or expired.
// A failed login leaves the session unauthenticated and is not retried here.
func (s *tokenSession) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() == SessionAuthenticated {
		return s.token, nil
	}

	token, expiresAt, err := s.login(ctx)
	if err != nil {
		s.token = ""
		s.expiresAt = time.Time{}
		return "", fmt.Errorf("login failed: %w", err)
	}
	if token == "" {
		s.token = ""
		return "", fmt.Errorf("login failed: empty token")
	}

	s.token = token
	s.expiresAt = expiresAt
	return token, nil
}

// Invalidate drops the cached token, e.g. after the courier answered 401.
func (s *tokenSession) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
}
