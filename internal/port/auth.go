package port

import (
	"context"
	"time"

	"github.com/arturoeanton/roadmapai/internal/domain"
)

// IdentityStore is the lookup/append surface over known identities.
type IdentityStore interface {
	// FindByEmail matches case-insensitively. Returns ErrNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns ErrNotFound on a miss.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Insert appends u. Returns ErrDuplicateUser if the email is taken.
	Insert(ctx context.Context, u *domain.User) error

	// Count returns the number of stored identities.
	Count(ctx context.Context) (int, error)
}

// TokenIssuer signs and verifies bearer credentials.
type TokenIssuer interface {
	// Issue signs a credential for u.
	Issue(u *domain.User) (string, error)

	// Verify returns the asserted identity, or an ErrTokenInvalid-kind error
	// for malformed, tampered or expired input.
	Verify(token string) (*domain.Identity, error)

	// TTL is the validity window of issued credentials.
	TTL() time.Duration
}
