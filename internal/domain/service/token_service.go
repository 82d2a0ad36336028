package service

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	AccountID uuid.UUID
	Username  string
	IssuedAt  time.Time
}

// Verification is the discriminated result of verifying a session token.
// When Valid is false, Reason carries a short classification (expired,
// malformed, invalid signature) and Claims is nil.
type Verification struct {
	Valid  bool
	Claims *SessionClaims
	Reason string
}

// TokenService defines the interface for issuing and verifying signed,
// time-bounded bearer tokens. Verify never raises to its caller: every
// failure mode is reported through the Verification result.
type TokenService interface {
	// Issue creates a signed token encoding the account identity, valid for
	// the configured TTL from issuance.
	Issue(accountID uuid.UUID, username string) (string, error)

	// Verify validates a token string and decodes its payload.
	Verify(tokenString string) Verification

	// TTL returns the configured token lifetime.
	TTL() time.Duration
}
