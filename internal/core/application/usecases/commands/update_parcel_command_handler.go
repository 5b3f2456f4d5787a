package commands

import (
	"context"
	"fmt"
	"log/slog"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// UpdateParcelCommandHandler applies policy-authorized changes to a parcel.
// Loads the current state, asks the transition policy what the actor may do,
// and applies the decision atomically: field writes and the status log entry
// land in the same transaction or not at all.
//
// Example:
//
//	handler := NewUpdateParcelCommandHandler(uowFactory, policy, clock, publisher, logger)
//	cmd, _ := NewUpdateParcelCommand(actor, trackingID, mutation)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // actor is not allowed to make this change
//	}
type UpdateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     services.TransitionPolicy
	clock      ports.Clock
	publisher  ports.StatusPublisher
	logger     *slog.Logger
}

// NewUpdateParcelCommandHandler creates a handler for parcel update operations.
func NewUpdateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	policy services.TransitionPolicy,
	clock ports.Clock,
	publisher ports.StatusPublisher,
	logger *slog.Logger,
) UpdateParcelCommandHandler {
	return UpdateParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		publisher:  publisher,
		logger:     logger.With("component", "update_parcel_handler"),
	}
}

// Handle processes the parcel update command.
//
// The policy decision is computed against the loaded state; the repository
// applies the resulting field set and log entry in one transaction. A
// Rejected decision surfaces as a forbidden error carrying the policy's
// reason. Status change events are published after commit, best effort: a
// broker failure is logged and the committed update stands.
func (h UpdateParcelCommandHandler) Handle(ctx context.Context, cmd UpdateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	current, err := parcelRepo.Get(ctx, cmd.TrackingID())
	if err != nil {
		return nil, err
	}

	previousStatus := current.CurrentStatus()

	decision := h.policy.Decide(cmd.Actor(), current, cmd.Mutation(), h.clock.Now())

	var authorized services.Authorized
	switch d := decision.(type) {
	case services.Authorized:
		authorized = d
	case services.Rejected:
		return nil, errs.NewForbiddenError(d.Reason)
	default:
		return nil, fmt.Errorf("unexpected policy decision %T", decision)
	}

	updated, err := parcelRepo.ConditionalUpdate(ctx, cmd.TrackingID(), authorized.FieldSet, authorized.LogEntry)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishStatusChange(ctx, updated, previousStatus, authorized.LogEntry)

	return updated, nil
}

func (h UpdateParcelCommandHandler) publishStatusChange(
	ctx context.Context,
	updated *parcel.Parcel,
	previousStatus parcel.Status,
	entry *parcel.StatusLogEntry,
) {
	if entry == nil || h.publisher == nil {
		return
	}

	event := ports.ParcelStatusEvent{
		TrackingID:     updated.TrackingID().String(),
		PreviousStatus: previousStatus.String(),
		Status:         entry.Status().String(),
		UpdatedBy:      entry.UpdatedBy().String(),
		Note:           entry.Note(),
		OccurredAt:     entry.CreatedAt(),
	}

	if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish status change event",
			"trackingId", event.TrackingID,
			"status", event.Status,
			"error", err)
	}
}
