// Package client is the in-process sync layer consumed by frontends: it
// mirrors the authenticated session and the visible conference list from the
// hosted API into local state, and keeps that state in sync with sign-in,
// create, and update calls.
package client

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"convomanage/internal/domain"
)

// setupInstruction replaces raw backend-not-configured errors with something
// a user can act on.
const setupInstruction = "backend not configured: set CONVO_API_URL and CONVO_API_KEY, then restart"

// SessionStore holds the current authenticated identity and loading state.
// It is mutated only by auth events from the auth client and by its own
// sign-in, sign-up, and sign-out calls.
type SessionStore struct {
	auth   domain.AuthClient
	logger *slog.Logger

	mu          sync.RWMutex
	user        *domain.User
	loading     bool
	initErr     error
	unsubscribe func()
}

// NewSessionStore creates a SessionStore over the given auth client. initErr
// records a client-construction failure; when set, every operation reports
// that error instead of attempting the backend.
func NewSessionStore(auth domain.AuthClient, initErr error, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		auth:    auth,
		logger:  logger,
		loading: true,
		initErr: initErr,
	}
}

// Start loads any existing session and subscribes to session changes. A
// failed load is logged and resolves loading without an identity.
func (s *SessionStore) Start(ctx context.Context) {
	if s.initErr != nil {
		s.logger.Error("auth client unavailable", "error", s.initErr)
		s.setUser(nil)
		return
	}

	s.mu.Lock()
	s.unsubscribe = s.auth.OnAuthStateChange(func(event domain.AuthEvent, session *domain.AuthSession) {
		if event == domain.AuthEventSignedOut || session == nil {
			s.setUser(nil)
			return
		}
		s.setUser(session.User)
	})
	s.mu.Unlock()

	go func() {
		session, err := s.auth.GetSession(ctx)
		if err != nil {
			s.logger.Error("failed to load session", "error", err)
			s.setUser(nil)
			return
		}
		if session == nil {
			s.setUser(nil)
			return
		}
		s.setUser(session.User)
	}()
}

// Stop unsubscribes from session changes.
func (s *SessionStore) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *SessionStore) setUser(u *domain.User) {
	s.mu.Lock()
	s.user = u
	s.loading = false
	s.mu.Unlock()
}

// User returns the current identity, or nil when signed out.
func (s *SessionStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Role returns the current identity's role, or "" when signed out.
func (s *SessionStore) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Loading reports whether the initial session load is still in flight.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SignIn authenticates with the backend. A recorded construction error takes
// precedence over anything the auth call would return.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	if err := s.configError(); err != nil {
		return err
	}
	session, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return rewriteNotConfigured(err)
	}
	s.setUser(session.User)
	return nil
}

// SignUp registers a new account. The selected role is forwarded to the
// backend, but the local identity is assigned the default role until the
// next session refresh.
// TODO: apply the role from the sign-up response once the profile row is
// readable immediately after registration.
func (s *SessionStore) SignUp(ctx context.Context, email, password, fullName string, role domain.Role) error {
	if err := s.configError(); err != nil {
		return err
	}
	session, err := s.auth.SignUp(ctx, email, password, fullName, role)
	if err != nil {
		return rewriteNotConfigured(err)
	}
	user := *session.User
	user.Role = domain.RoleAttendee
	s.setUser(&user)
	return nil
}

// SignOut ends the session and clears the identity.
func (s *SessionStore) SignOut(ctx context.Context) error {
	if err := s.configError(); err != nil {
		return err
	}
	if err := s.auth.SignOut(ctx); err != nil {
		return rewriteNotConfigured(err)
	}
	s.setUser(nil)
	return nil
}

func (s *SessionStore) configError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.initErr != nil {
		return errors.New(setupInstruction)
	}
	return nil
}

func rewriteNotConfigured(err error) error {
	if errors.Is(err, domain.ErrNotConfigured) || strings.Contains(err.Error(), "not configured") {
		return errors.New(setupInstruction)
	}
	return err
}
