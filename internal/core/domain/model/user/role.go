package user

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role represents the authorization role of a user in the parcel system.
// The set of roles is closed: the transition policy dispatches exhaustively
// over it, and an unrecognized role is always rejected.
type Role int

const (
	// UnknownRole represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	UnknownRole Role = iota

	// SuperAdmin has full administrative control, including other admins.
	SuperAdmin

	// Admin manages parcels: any field, any status, block flags.
	Admin

	// Sender creates parcels and may cancel or retarget them while requested.
	Sender

	// DeliveryMan progresses parcels through pickup, transit and delivery.
	DeliveryMan

	// Receiver is the recipient of parcels. Receivers only read; every
	// mutation attempt by a receiver is rejected.
	Receiver
)

// getRoleStrings returns a map of Role values to their string representations.
// All roles are included for string conversion.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "UNKNOWN",
		SuperAdmin:  "SUPER_ADMIN",
		Admin:       "ADMIN",
		Sender:      "SENDER",
		DeliveryMan: "DELIVERY_MAN",
		Receiver:    "RECEIVER",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
// Only valid roles are included to support validation and parsing.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		SuperAdmin:  "SUPER_ADMIN",
		Admin:       "ADMIN",
		Sender:      "SENDER",
		DeliveryMan: "DELIVERY_MAN",
		Receiver:    "RECEIVER",
	}
}

// RoleFromString parses a wire-format role name into a Role.
// Returns an error for names outside the closed role set.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: SuperAdmin, Admin, Sender, DeliveryMan, Receiver.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format name of the role, e.g. "DELIVERY_MAN".
// Returns "UNKNOWN" for invalid role values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsAdministrative reports whether the role carries administrative privileges.
// Admin and SuperAdmin share the same parcel-mutation rights.
func (r Role) IsAdministrative() bool {
	return r == Admin || r == SuperAdmin
}

// MayCreateParcels reports whether the role is allowed to create parcels.
// Only senders and administrative roles can; delivery men and receivers cannot.
func (r Role) MayCreateParcels() bool {
	return r == Sender || r.IsAdministrative()
}
