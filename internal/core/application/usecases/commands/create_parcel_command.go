package commands

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrCreateParcelCommandIsNotConstructed is returned when the command was not
// created via NewCreateParcelCommand.
var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand represents a request to file a new delivery.
// The sender id names the account the parcel belongs to; administrators may
// file on behalf of any sender, senders only for themselves.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	actor                user.Actor
	senderID             kernel.UUID
	receiver             parcel.Receiver
	packageDetails       parcel.PackageDetails
	fee                  float64
	expectedDeliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a validated command to file a delivery.
// The receiver and package details must already be constructed value objects,
// so all structural validation has happened before the command exists.
func NewCreateParcelCommand(
	actor user.Actor,
	senderID kernel.UUID,
	receiver parcel.Receiver,
	packageDetails parcel.PackageDetails,
	fee float64,
	expectedDeliveryDate *time.Time,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setSenderID(senderID),
		cmd.setReceiver(receiver),
		cmd.setPackageDetails(packageDetails),
		cmd.setFee(fee),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	cmd.expectedDeliveryDate = expectedDeliveryDate

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// Actor returns the authenticated principal filing the delivery.
func (c CreateParcelCommand) Actor() user.Actor {
	return c.actor
}

// SenderID returns the account the parcel will belong to.
func (c CreateParcelCommand) SenderID() kernel.UUID {
	return c.senderID
}

// Receiver returns the receiver contact information.
func (c CreateParcelCommand) Receiver() parcel.Receiver {
	return c.receiver
}

// PackageDetails returns the package classification, weight and description.
func (c CreateParcelCommand) PackageDetails() parcel.PackageDetails {
	return c.packageDetails
}

// Fee returns the delivery fee.
func (c CreateParcelCommand) Fee() float64 {
	return c.fee
}

// ExpectedDeliveryDate returns the promised delivery date, if any.
func (c CreateParcelCommand) ExpectedDeliveryDate() *time.Time {
	return c.expectedDeliveryDate
}

func (c *CreateParcelCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateParcelCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}

	c.senderID = senderID
	return nil
}

func (c *CreateParcelCommand) setReceiver(receiver parcel.Receiver) error {
	if err := receiver.Validate(); err != nil {
		return err
	}

	c.receiver = receiver
	return nil
}

func (c *CreateParcelCommand) setPackageDetails(packageDetails parcel.PackageDetails) error {
	if err := packageDetails.Validate(); err != nil {
		return err
	}

	c.packageDetails = packageDetails
	return nil
}

func (c *CreateParcelCommand) setFee(fee float64) error {
	if fee < 0 || fee > parcel.MaxFee {
		return errs.NewValueIsOutOfRangeError("fee", fee, 0, parcel.MaxFee)
	}

	c.fee = fee
	return nil
}
