package user

import (
	"errors"
	"net/mail"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created through
// the NewUser factory method or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User represents an account known to the parcel system. Users are referenced
// by parcels (as senders) and by actors performing operations.
//
// User maintains these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty name and a well-formed email address
//   - Must have a valid role from the closed role set
type User struct {
	id    kernel.UUID
	name  string
	email string
	role  Role

	isConstructed bool
}

// NewUser creates a new User instance with validation.
// Returns a validation error if any parameter is invalid.
func NewUser(id kernel.UUID, name, email string, role Role) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence.
// The same validation rules as NewUser apply.
func RestoreUser(id kernel.UUID, name, email string, role Role) (*User, error) {
	return NewUser(id, name, email, role)
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email address. For receivers this address is the
// ownership link to parcels: a receiver sees parcels whose receiver email
// matches their account email.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's authorization role.
func (u *User) Role() Role {
	return u.role
}

// AsActor returns the actor projection of this user for policy evaluation.
func (u *User) AsActor() Actor {
	return Actor{ID: u.id, Role: u.role}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// Actor is the authenticated principal performing an operation: the user id
// plus role extracted from a verified token by the (external) auth layer.
// The transition policy only ever sees actors, never full user records.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// Validate checks that the actor carries a constructed id and a valid role.
func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}
