// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in. Identifier matches either
// the username or the email of an account.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// VerifySessionInput carries the bearer token presented by a caller.
type VerifySessionInput struct {
	Token string `json:"token" validate:"required"`
}

// --- Output DTOs ---

// AccountInfo is the caller-facing projection of an account. It deliberately
// has no password hash field.
type AccountInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthOutput returns the issued token and account after a successful
// registration or login.
type AuthOutput struct {
	Token   string       `json:"token"`
	Account *AccountInfo `json:"account"`
}

// SessionOutput is the discriminated result of a session verification.
type SessionOutput struct {
	Valid     bool      `json:"valid"`
	AccountID uuid.UUID `json:"accountId,omitempty"`
	Username  string    `json:"username,omitempty"`
	IssuedAt  time.Time `json:"issuedAt,omitzero"`
	Reason    string    `json:"reason,omitempty"`
}

// AccountUsecase defines the interface for account-related business
// operations. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	// Register validates input, enforces uniqueness, hashes the password,
	// persists the account and issues a session token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates by username-or-email identifier and password.
	// Unknown identifier and wrong password produce identical failures.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// VerifySession validates a bearer token. It never returns an error for
	// an invalid token; the outcome is carried in SessionOutput.
	VerifySession(ctx context.Context, token string) *SessionOutput

	// CheckUsernameAvailable reports whether a username is still free.
	CheckUsernameAvailable(ctx context.Context, username string) (bool, error)

	// ListAccounts returns all accounts without secrets. Administrative and
	// debug use only.
	ListAccounts(ctx context.Context) ([]*AccountInfo, error)
}
