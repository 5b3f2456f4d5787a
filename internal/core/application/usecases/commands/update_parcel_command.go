package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrUpdateParcelCommandIsNotConstructed is returned when the command was not
// created via NewUpdateParcelCommand.
var ErrUpdateParcelCommandIsNotConstructed = errors.New(
	"UpdateParcelCommand must be created via NewUpdateParcelCommand constructor",
)

// UpdateParcelCommand represents a proposed change to a parcel: any subset of
// mutable fields plus an optional status transition with note. What the actor
// may actually apply is decided by the transition policy, not here.
type UpdateParcelCommand struct { //nolint:recvcheck //using for validation
	actor      user.Actor
	trackingID kernel.TrackingID
	mutation   parcel.Mutation

	guard guard.ConstructorGuard
}

// NewUpdateParcelCommand creates a validated update command. The mutation must
// be structurally valid and propose at least one field change; a note by
// itself is not an update.
func NewUpdateParcelCommand(
	actor user.Actor,
	trackingID kernel.TrackingID,
	mutation parcel.Mutation,
) (UpdateParcelCommand, error) {
	cmd := UpdateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setTrackingID(trackingID),
		cmd.setMutation(mutation),
	); err != nil {
		return UpdateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

// Actor returns the authenticated principal proposing the change.
func (c UpdateParcelCommand) Actor() user.Actor {
	return c.actor
}

// TrackingID returns the id of the parcel to update.
func (c UpdateParcelCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}

// Mutation returns the proposed field changes and status transition.
func (c UpdateParcelCommand) Mutation() parcel.Mutation {
	return c.mutation
}

func (c *UpdateParcelCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateParcelCommand) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}

	c.trackingID = trackingID
	return nil
}

func (c *UpdateParcelCommand) setMutation(mutation parcel.Mutation) error {
	if mutation.IsEmpty() {
		return errs.NewValueIsRequiredError("at least one field to update")
	}
	if err := mutation.Validate(); err != nil {
		return err
	}

	c.mutation = mutation
	return nil
}
