// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/MagGomedMY/stark-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when no account
// matches the given identifier.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete
// implementation. The storage layer's uniqueness constraints on username and
// email are the final authority for the uniqueness invariant; any pre-check
// performed through ExistsByUsernameOrEmail is only a fast path.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByIdentifier retrieves a single account whose username or email
	// matches the given identifier. Returns ErrAccountNotFound when absent.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.Account, error)

	// ExistsByUsernameOrEmail reports whether any account already holds the
	// given username or email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Create persists a new account. A storage-layer uniqueness violation is
	// surfaced as a conflict, not a generic database error.
	Create(ctx context.Context, account *entity.Account) error

	// ListAll returns every account with the password hash column excluded.
	ListAll(ctx context.Context) ([]*entity.Account, error)
}
