package inmemory

import (
	"context"
	"fmt"
	"sync"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// UserRepository is an in-memory implementation of the user repository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*user.User),
	}
}

// Add stores a new user. Duplicate ids and emails are reported as conflicts.
func (r *UserRepository) Add(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.ID().String()
	if _, taken := r.users[key]; taken {
		return errs.NewConflictError(fmt.Sprintf("user %s already exists", key))
	}
	for _, existing := range r.users {
		if existing.Email() == aggregate.Email() {
			return errs.NewConflictError(
				fmt.Sprintf("email %s already exists", aggregate.Email()))
		}
	}

	r.users[key] = aggregate
	return nil
}

// Get retrieves a user by id.
func (r *UserRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("id", id.String())
	}

	return stored, nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Email() == email {
			return stored, nil
		}
	}

	return nil, errs.NewObjectNotFoundError("email", email)
}
