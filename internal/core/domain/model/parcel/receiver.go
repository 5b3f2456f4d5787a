package parcel

import (
	"net/mail"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Receiver field bounds, mirrored from the external validation layer.
const (
	MinReceiverNameLength    = 2
	MaxReceiverNameLength    = 50
	MinReceiverAddressLength = 5
	MaxReceiverAddressLength = 200
	MinReceiverEmailLength   = 5
	MaxReceiverEmailLength   = 100
)

// ErrReceiverIsNotConstructed is returned when a Receiver was not created via NewReceiver.
var ErrReceiverIsNotConstructed = errs.NewValueIsRequiredError(
	"Receiver must be created via NewReceiver")

// Receiver is the structured contact information of the person a parcel is
// addressed to. Receivers are not required to hold an account: the email
// address is the only link between a receiver account and its parcels.
type Receiver struct {
	name    string
	phone   string
	address string
	email   string

	guard guard.ConstructorGuard
}

// NewReceiver creates validated receiver contact information.
func NewReceiver(name, phone, address, email string) (Receiver, error) {
	if len(name) < MinReceiverNameLength || len(name) > MaxReceiverNameLength {
		return Receiver{}, errs.NewValueIsOutOfRangeError(
			"receiver name length", len(name), MinReceiverNameLength, MaxReceiverNameLength)
	}

	if phone == "" {
		return Receiver{}, errs.NewValueIsRequiredError("receiver phone")
	}

	if len(address) < MinReceiverAddressLength || len(address) > MaxReceiverAddressLength {
		return Receiver{}, errs.NewValueIsOutOfRangeError(
			"receiver address length", len(address), MinReceiverAddressLength, MaxReceiverAddressLength)
	}

	if len(email) < MinReceiverEmailLength || len(email) > MaxReceiverEmailLength {
		return Receiver{}, errs.NewValueIsOutOfRangeError(
			"receiver email length", len(email), MinReceiverEmailLength, MaxReceiverEmailLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Receiver{}, errs.NewValueIsInvalidErrorWithCause("receiver email", err)
	}

	return Receiver{
		name:    name,
		phone:   phone,
		address: address,
		email:   email,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the value was created through NewReceiver.
func (r Receiver) Validate() error {
	return r.guard.Validate(ErrReceiverIsNotConstructed)
}

// Name returns the receiver's display name.
func (r Receiver) Name() string {
	return r.name
}

// Phone returns the receiver's phone number.
func (r Receiver) Phone() string {
	return r.phone
}

// Address returns the delivery address.
func (r Receiver) Address() string {
	return r.address
}

// Email returns the receiver's contact email. This address scopes the
// receiver read filter: accounts see parcels addressed to their email.
func (r Receiver) Email() string {
	return r.email
}
