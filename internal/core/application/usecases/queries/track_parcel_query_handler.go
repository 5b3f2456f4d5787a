package queries

import (
	"context"
	"database/sql"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackParcelQueryHandler retrieves a single parcel with its status history.
// The endpoint is public, so no scoping happens here: whoever holds the
// tracking id gets the projection, a missing parcel an object-not-found error.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for parcel tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle executes the tracking query and returns the full parcel read model.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	response, err := h.loadParcel(ctx, query.TrackingID())
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	log, err := h.loadStatusLog(ctx, query.TrackingID())
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	response.StatusLog = log

	return response, nil
}

func (h TrackParcelQueryHandler) loadParcel(
	ctx context.Context,
	trackingID kernel.TrackingID,
) (TrackParcelQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_id,
			sender_id,
			receiver_name,
			receiver_phone,
			receiver_address,
			receiver_email,
			package_type,
			package_weight,
			package_description,
			fee,
			status,
			is_blocked,
			expected_delivery_date,
			actual_delivery_date,
			created_at
		FROM parcels
		WHERE tracking_id = ?
	`, trackingID.String()).Row()

	var response TrackParcelQueryResponse
	var senderID uuid.UUID

	err := row.Scan(
		&response.TrackingID,
		&senderID,
		&response.ReceiverName,
		&response.ReceiverPhone,
		&response.ReceiverAddress,
		&response.ReceiverEmail,
		&response.PackageType,
		&response.PackageWeight,
		&response.PackageDescription,
		&response.Fee,
		&response.Status,
		&response.IsBlocked,
		&response.ExpectedDeliveryDate,
		&response.ActualDeliveryDate,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackParcelQueryResponse{}, errs.NewObjectNotFoundError("trackingId", trackingID.String())
	}
	if err != nil {
		return TrackParcelQueryResponse{}, errs.NewUnavailableError("load parcel", err)
	}

	id, err := kernel.UUIDFromBytes(senderID[:])
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	response.SenderID = id

	return response, nil
}

func (h TrackParcelQueryHandler) loadStatusLog(
	ctx context.Context,
	trackingID kernel.TrackingID,
) ([]StatusLogEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			updated_by,
			note,
			created_at
		FROM parcel_status_logs
		WHERE parcel_tracking_id = ?
		ORDER BY seq
	`, trackingID.String()).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("load status log", err)
	}
	defer rows.Close()

	log := make([]StatusLogEntryResponse, 0)
	for rows.Next() {
		var entry StatusLogEntryResponse
		var updatedBy uuid.UUID

		if err = rows.Scan(&entry.Status, &updatedBy, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, errs.NewUnavailableError("load status log", err)
		}

		id, idErr := kernel.UUIDFromBytes(updatedBy[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.UpdatedBy = id

		log = append(log, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUnavailableError("load status log", err)
	}

	return log, nil
}
