package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
// Accounts are provisioned by an external identity system; this service
// only reads them to resolve actors and receiver links.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	Add(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by id.
	// Returns an object-not-found error if the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns an object-not-found error if no account carries the address.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
