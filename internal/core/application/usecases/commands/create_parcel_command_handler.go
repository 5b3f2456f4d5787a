package commands

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// maxTrackingIDAttempts bounds the id allocation loop. The candidate space is
// large enough that hitting the bound means the generator is broken, not that
// the system ran out of ids.
const maxTrackingIDAttempts = 5

// CreateParcelCommandHandler handles the business logic for filing deliveries.
// Allocates a unique tracking id, creates the parcel in requested status with
// its seed log entry, and persists everything in one transaction.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, generator, clock)
//	cmd, _ := NewCreateParcelCommand(actor, senderID, receiver, details, 12.5, nil)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create parcel: %w", err)
//	}
//	fmt.Printf("Parcel %s filed", created.TrackingID())
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	generator  ports.TrackingIDGenerator
	clock      ports.Clock
}

// NewCreateParcelCommandHandler creates a handler for parcel creation operations.
func NewCreateParcelCommandHandler(
	uowFactory UoWFactory,
	generator ports.TrackingIDGenerator,
	clock ports.Clock,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		clock:      clock,
	}
}

// Handle processes the parcel creation command.
//
// Authorization: senders may only file their own parcels, administrators may
// file on behalf of any sender, every other role is rejected. The referenced
// sender account must exist and carry the SENDER role.
//
// Id allocation is optimistic: generate a candidate, probe for it, insert,
// and on a lost uniqueness race generate a fresh candidate. After
// maxTrackingIDAttempts failed candidates the handler gives up with a
// tracking-id-allocation-exhausted error.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Role.MayCreateParcels() {
		return nil, errs.NewForbiddenError(
			fmt.Sprintf("role %s is not allowed to create parcels", actor.Role))
	}
	if actor.Role == user.Sender && !actor.ID.IsEqual(cmd.SenderID()) {
		return nil, errs.NewForbiddenError("senders can only create their own parcels")
	}

	if err := h.checkSender(ctx, cmd.SenderID()); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxTrackingIDAttempts; attempt++ {
		trackingID, err := h.generator.Generate()
		if err != nil {
			return nil, err
		}

		created, err := h.tryCreate(ctx, cmd, trackingID)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return created, nil
	}

	return nil, errs.NewTrackingIDAllocationExhaustedError(maxTrackingIDAttempts)
}

// checkSender verifies the target account exists and is a sender. Filing a
// parcel for a missing or non-sender account is a state conflict, not an
// authorization failure of the actor.
func (h CreateParcelCommandHandler) checkSender(ctx context.Context, senderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sender, err := uow.UserRepository().Get(ctx, senderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewConflictErrorWithCause(
			fmt.Sprintf("sender %s does not exist", senderID), err)
	}
	if err != nil {
		return err
	}

	if sender.Role() != user.Sender {
		return errs.NewConflictError(
			fmt.Sprintf("user %s has role %s, parcels can only be filed for senders",
				senderID, sender.Role()))
	}

	return nil
}

// tryCreate inserts the parcel under the candidate id in its own transaction.
// A conflict from the unique tracking id constraint aborts the transaction,
// so each attempt needs a fresh unit of work.
func (h CreateParcelCommandHandler) tryCreate(
	ctx context.Context,
	cmd CreateParcelCommand,
	trackingID kernel.TrackingID,
) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	taken, err := parcelRepo.Exists(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewConflictError(
			fmt.Sprintf("tracking id %s is already taken", trackingID))
	}

	created, err := parcel.NewParcel(
		trackingID,
		cmd.SenderID(),
		cmd.Receiver(),
		cmd.PackageDetails(),
		cmd.Fee(),
		cmd.ExpectedDeliveryDate(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
