package service

import (
	"context"
	"errors"
	"sync"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// CredentialVault persists one client's credential string. A nil vault or
// one without a store is a no-op, so non-interactive callers can use it
// unconditionally.
type CredentialVault struct {
	store    port.SlotStore
	clientID string
	log      *logger.Logger
}

// NewCredentialVault binds the credential slot of clientID in store.
func NewCredentialVault(store port.SlotStore, clientID string, log *logger.Logger) *CredentialVault {
	return &CredentialVault{store: store, clientID: clientID, log: log.With("component", "credential_vault")}
}

func (v *CredentialVault) enabled() bool { return v != nil && v.store != nil }

func (v *CredentialVault) key() string { return port.SlotKey(v.clientID, port.SlotCredential) }

// Store saves token. Failures are logged.
func (v *CredentialVault) Store(ctx context.Context, token string) {
	if !v.enabled() {
		return
	}
	if err := v.store.Put(ctx, v.key(), []byte(token)); err != nil {
		v.log.Error("failed to store token", "error", err)
	}
}

// Retrieve returns the stored token, if any.
func (v *CredentialVault) Retrieve(ctx context.Context) (string, bool) {
	if !v.enabled() {
		return "", false
	}
	raw, err := v.store.Get(ctx, v.key())
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			v.log.Error("failed to retrieve token", "error", err)
		}
		return "", false
	}
	if len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// Clear removes the stored token. Failures are logged.
func (v *CredentialVault) Clear(ctx context.Context) {
	if !v.enabled() {
		return
	}
	if err := v.store.Delete(ctx, v.key()); err != nil {
		v.log.Error("failed to remove token", "error", err)
	}
}

// Outcome is the user-facing result of a login or signup attempt.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Session is one client's authentication state machine:
//
//	authenticating -> authenticated | unauthenticated   (Start)
//	unauthenticated -> authenticating -> authenticated  (Login, Signup)
//	authenticated -> unauthenticated                    (Logout)
//
// A new Session is authenticating until Start has run; Ready is closed
// once it has.
type Session struct {
	auth  *AuthService
	vault *CredentialVault
	log   *logger.Logger

	startOnce sync.Once
	ready     chan struct{}

	mu    sync.RWMutex
	state domain.SessionState
	user  *domain.User
}

// NewSession creates a session in the authenticating state.
func NewSession(auth *AuthService, vault *CredentialVault, log *logger.Logger) *Session {
	return &Session{
		auth:  auth,
		vault: vault,
		log:   log.With("component", "session"),
		ready: make(chan struct{}),
		state: domain.SessionAuthenticating,
	}
}

// Start rehydrates identity from the stored credential. It blocks until the
// outcome is known and is safe to call more than once. A bad or stale
// credential is cleared silently.
func (s *Session) Start(ctx context.Context) *domain.User {
	s.startOnce.Do(func() {
		defer close(s.ready)

		token, ok := s.vault.Retrieve(ctx)
		if !ok {
			s.set(domain.SessionUnauthenticated, nil)
			s.log.Debug("session rehydrate", "outcome", "no_credential")
			return
		}

		user := s.auth.ResolveIdentity(ctx, token)
		if user == nil {
			s.vault.Clear(ctx)
			s.set(domain.SessionUnauthenticated, nil)
			s.log.Info("session rehydrate", "outcome", "rejected")
			return
		}

		s.set(domain.SessionAuthenticated, user)
		s.log.Info("session rehydrate", "outcome", "restored", "user_id", user.ID)
	})
	return s.User()
}

// Ready is closed once Start has finished.
func (s *Session) Ready() <-chan struct{} { return s.ready }

func (s *Session) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in identity, or nil.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == domain.SessionAuthenticated
}

// Login authenticates and persists the credential on success. On failure
// the previous state is restored and nothing is persisted.
func (s *Session) Login(ctx context.Context, email, password string) Outcome {
	return s.authenticate(ctx, func() (*domain.AuthResult, error) {
		return s.auth.Login(ctx, email, password)
	})
}

// Signup creates an identity and signs it in.
func (s *Session) Signup(ctx context.Context, email, password, name string) Outcome {
	return s.authenticate(ctx, func() (*domain.AuthResult, error) {
		return s.auth.Signup(ctx, email, password, name)
	})
}

func (s *Session) authenticate(ctx context.Context, fn func() (*domain.AuthResult, error)) Outcome {
	s.mu.Lock()
	prevState, prevUser := s.state, s.user
	s.state = domain.SessionAuthenticating
	s.mu.Unlock()

	res, err := fn()
	if err != nil {
		s.set(prevState, prevUser)
		return Outcome{Success: false, Error: userMessage(err)}
	}

	s.vault.Store(ctx, res.Token)
	s.set(domain.SessionAuthenticated, res.User)
	return Outcome{Success: true}
}

// Logout clears the stored credential and the in-memory identity.
func (s *Session) Logout(ctx context.Context) {
	s.vault.Clear(ctx)
	s.set(domain.SessionUnauthenticated, nil)
	s.log.Info("logout")
}

func (s *Session) set(state domain.SessionState, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}

// userMessage returns the display text for err. Only tagged errors carry a
// message meant for users.
func userMessage(err error) string {
	var e *port.Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "An unexpected error occurred"
}
