package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// AuthService issues and checks credentials against an identity store.
// There is no password check: any password is accepted for a known email.
type AuthService struct {
	identities port.IdentityStore
	tokens     port.TokenIssuer
	log        *logger.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(identities port.IdentityStore, tokens port.TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{
		identities: identities,
		tokens:     tokens,
		log:        log.With("service", "auth"),
		now:        time.Now,
	}
}

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Login looks up email case-insensitively and issues a credential.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	s.log.Info("login attempt", "email", email)

	if email == "" || password == "" {
		return nil, port.Validation("Email and password are required")
	}
	if !ValidEmail(email) {
		return nil, port.Validation("Please enter a valid email address")
	}

	user, err := s.identities.FindByEmail(ctx, email)
	if errors.Is(err, port.ErrNotFound) {
		s.log.Info("login rejected", "email", email, "reason", "unknown email")
		return nil, port.InvalidCredentials("Invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("login succeeded", "user_id", user.ID)
	return &domain.AuthResult{Token: token, User: user}, nil
}

// Signup validates input, appends a new identity and issues a credential.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
	if email == "" || password == "" || name == "" {
		return nil, port.Validation("All fields are required")
	}
	if !ValidEmail(email) {
		return nil, port.Validation("Please enter a valid email address")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, port.Validation(fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}

	if _, err := s.identities.FindByEmail(ctx, email); err == nil {
		s.log.Info("signup rejected", "email", email, "reason", "duplicate")
		return nil, port.DuplicateUser("User already exists")
	} else if !errors.Is(err, port.ErrNotFound) {
		return nil, fmt.Errorf("find identity: %w", err)
	}

	user := &domain.User{
		Email:     email,
		Name:      name,
		AvatarURL: AvatarURL(name),
		CreatedAt: s.now(),
	}
	if err := s.identities.Insert(ctx, user); err != nil {
		if errors.Is(err, port.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("signup succeeded", "user_id", user.ID)
	return &domain.AuthResult{Token: token, User: user}, nil
}

// Verify never fails loudly: any problem yields nil.
func (s *AuthService) Verify(token string) *domain.Identity {
	id, err := s.tokens.Verify(token)
	if err != nil {
		s.log.Debug("token rejected", "error", err)
		return nil
	}
	return id
}

// ResolveIdentity verifies token and looks up the identity it names. It
// returns nil when the token is bad or the identity no longer exists.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) *domain.User {
	id := s.Verify(token)
	if id == nil {
		return nil
	}
	user, err := s.identities.FindByID(ctx, id.UserID)
	if err != nil {
		s.log.Debug("token names unknown identity", "user_id", id.UserID, "error", err)
		return nil
	}
	return user
}

// componentUnescaper undoes the QueryEscape output that a URI component
// encoder leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// AvatarURL builds the generated avatar link for a new identity. The name is
// escaped as a URI component: spaces become %20 and !'()* are kept.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + componentUnescaper.Replace(url.QueryEscape(name)) + "&background=random"
}
