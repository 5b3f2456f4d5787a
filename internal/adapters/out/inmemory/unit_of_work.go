package inmemory

import (
	"context"

	"parceltrack/internal/core/ports"
)

// UnitOfWorkFactory creates no-op units of work over shared in-memory
// repositories. There is no transaction isolation: the repositories apply
// each operation atomically under their own locks, which is enough for the
// single-writer conditional update the command handlers perform.
type UnitOfWorkFactory struct {
	parcels *ParcelRepository
	users   *UserRepository
}

// NewUnitOfWorkFactory creates a factory over the given repositories.
func NewUnitOfWorkFactory(parcels *ParcelRepository, users *UserRepository) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		parcels: parcels,
		users:   users,
	}
}

// Create produces a new no-op unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		parcels: f.parcels,
		users:   f.users,
	}
}

// UnitOfWork is the no-op transaction boundary over in-memory repositories.
type UnitOfWork struct {
	parcels *ParcelRepository
	users   *UserRepository
}

// Begin is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error { return nil }

// Commit is a no-op.
func (uow *UnitOfWork) Commit(_ context.Context) error { return nil }

// Rollback is a no-op.
func (uow *UnitOfWork) Rollback(_ context.Context) error { return nil }

// ParcelRepository returns the shared in-memory parcel repository.
func (uow *UnitOfWork) ParcelRepository() ports.ParcelRepository {
	return uow.parcels
}

// UserRepository returns the shared in-memory user repository.
func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return uow.users
}
