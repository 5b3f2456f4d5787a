package parcelrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// fieldColumns maps logical field paths to parcel table columns.
var fieldColumns = map[parcel.FieldPath]string{
	parcel.FieldReceiverName:         "receiver_name",
	parcel.FieldReceiverPhone:        "receiver_phone",
	parcel.FieldReceiverAddress:      "receiver_address",
	parcel.FieldReceiverEmail:        "receiver_email",
	parcel.FieldPackageType:          "package_type",
	parcel.FieldPackageWeight:        "package_weight",
	parcel.FieldPackageDescription:   "package_description",
	parcel.FieldFee:                  "fee",
	parcel.FieldExpectedDeliveryDate: "expected_delivery_date",
	parcel.FieldIsBlocked:            "is_blocked",
	parcel.FieldCurrentStatus:        "status",
	parcel.FieldActualDeliveryDate:   "actual_delivery_date",
}

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel with its seed status log to the database.
// A duplicate tracking id is reported as a conflict so the id allocation
// loop can retry with a fresh candidate.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				fmt.Sprintf("tracking id %s is already taken", aggregate.TrackingID()), err)
		}
		return errs.NewUnavailableError("add parcel", err)
	}

	r.tracker.TrackAggregate(aggregate.TrackingID().String(), aggregate)
	return nil
}

// Get retrieves a parcel with its full status log by tracking id.
func (r *GormParcelRepository) Get(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "tracking_id = ?", trackingID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, errs.NewUnavailableError("load parcel", err)
	}

	return toDomain(dto)
}

// Exists reports whether a parcel with the given tracking id is stored.
func (r *GormParcelRepository) Exists(ctx context.Context, trackingID kernel.TrackingID) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_id = ?", trackingID.String()).
		Count(&count).Error
	if err != nil {
		return false, errs.NewUnavailableError("check parcel existence", err)
	}

	return count > 0, nil
}

// ConditionalUpdate applies the authorized field assignments and appends the
// status log entry, if any, to the audit trail. Both writes run on the
// repository's connection, which inside a unit of work is the transaction, so
// they commit or roll back together.
func (r *GormParcelRepository) ConditionalUpdate(
	ctx context.Context,
	trackingID kernel.TrackingID,
	fields parcel.FieldSet,
	logEntry *parcel.StatusLogEntry,
) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	updates, err := columnUpdates(fields)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&ParcelDTO{}).
			Where("tracking_id = ?", trackingID.String()).
			Updates(updates)
		if result.Error != nil {
			return nil, errs.NewUnavailableError("update parcel", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
	}

	if logEntry != nil {
		if err = r.appendLogEntry(ctx, trackingID, *logEntry); err != nil {
			return nil, err
		}
	}

	updated, err := r.Get(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(trackingID.String(), updated)
	return updated, nil
}

// appendLogEntry locks the parent parcel row before numbering the entry so
// concurrent transactions on one parcel serialize instead of colliding on the
// (parcel_tracking_id, seq) primary key.
func (r *GormParcelRepository) appendLogEntry(
	ctx context.Context,
	trackingID kernel.TrackingID,
	entry parcel.StatusLogEntry,
) error {
	var one int
	row := r.db.WithContext(ctx).
		Raw("SELECT 1 FROM parcels WHERE tracking_id = ? FOR UPDATE", trackingID.String()).
		Row()
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return errs.NewUnavailableError("lock parcel", err)
	}

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO parcel_status_logs (parcel_tracking_id, seq, status, updated_by, note, created_at)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?
		FROM parcel_status_logs
		WHERE parcel_tracking_id = ?
	`, trackingID.String(), entry.Status().String(), entry.UpdatedBy().Bytes(),
		entry.Note(), entry.CreatedAt(), trackingID.String()).Error
	if err != nil {
		return errs.NewUnavailableError("append status log entry", err)
	}

	return nil
}

// columnUpdates translates logical field assignments to a column update map,
// converting domain enums to their stored string form.
func columnUpdates(fields parcel.FieldSet) (map[string]any, error) {
	updates := make(map[string]any, len(fields))

	for _, field := range fields {
		column, ok := fieldColumns[field.Path]
		if !ok {
			return nil, errs.NewValueIsInvalidError(fmt.Sprintf("field path %s", field.Path))
		}

		switch value := field.Value.(type) {
		case parcel.Status:
			updates[column] = value.String()
		case parcel.PackageType:
			updates[column] = value.String()
		default:
			updates[column] = field.Value
		}
	}

	return updates, nil
}
