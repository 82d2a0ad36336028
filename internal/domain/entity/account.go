// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system: a registered identity with a
// unique username and a unique email. PasswordHash stores the bcrypt-hashed
// secret and must never be serialized back to any caller.
type Account struct {
	ID           uuid.UUID // Server-assigned stable identifier.
	Username     string    // Unique, case-sensitive as provided, immutable after creation.
	Email        string    // Unique contact address, also accepted as a login identifier.
	PasswordHash string    // Opaque bcrypt hash; never the plaintext.
	CreatedAt    time.Time // Set once when the account is created.
}
