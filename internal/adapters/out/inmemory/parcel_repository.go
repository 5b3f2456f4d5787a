// Package inmemory provides map-backed repository implementations guarded by
// mutexes. Used by unit tests and local development where a database is not
// available; the semantics mirror the postgres adapter, including conflict
// reporting and atomic conditional updates.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// ParcelRepository is an in-memory implementation of the parcel repository.
// All operations take the same lock, so a conditional update is observed
// either fully applied or not at all.
type ParcelRepository struct {
	mu      sync.RWMutex
	parcels map[string]*parcel.Parcel
}

// NewParcelRepository creates an empty in-memory parcel repository.
func NewParcelRepository() *ParcelRepository {
	return &ParcelRepository{
		parcels: make(map[string]*parcel.Parcel),
	}
}

// Add stores a new parcel. A duplicate tracking id is reported as a conflict.
func (r *ParcelRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.TrackingID().String()
	if _, taken := r.parcels[key]; taken {
		return errs.NewConflictError(fmt.Sprintf("tracking id %s is already taken", key))
	}

	r.parcels[key] = aggregate
	return nil
}

// Get retrieves a parcel by tracking id.
func (r *ParcelRepository) Get(_ context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.parcels[trackingID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
	}

	return stored, nil
}

// Exists reports whether a parcel with the given tracking id is stored.
func (r *ParcelRepository) Exists(_ context.Context, trackingID kernel.TrackingID) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.parcels[trackingID.String()]
	return ok, nil
}

// ConditionalUpdate rebuilds the stored parcel with the field assignments
// applied and the log entry appended, all under one lock acquisition.
func (r *ParcelRepository) ConditionalUpdate(
	_ context.Context,
	trackingID kernel.TrackingID,
	fields parcel.FieldSet,
	logEntry *parcel.StatusLogEntry,
) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := trackingID.String()
	stored, ok := r.parcels[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingId", key)
	}

	updated, err := applyFields(stored, fields, logEntry)
	if err != nil {
		return nil, err
	}

	r.parcels[key] = updated
	return updated, nil
}

// applyFields projects the field assignments onto a fresh aggregate restored
// from the stored one.
func applyFields(stored *parcel.Parcel, fields parcel.FieldSet, logEntry *parcel.StatusLogEntry) (*parcel.Parcel, error) {
	receiverName := stored.Receiver().Name()
	receiverPhone := stored.Receiver().Phone()
	receiverAddress := stored.Receiver().Address()
	receiverEmail := stored.Receiver().Email()
	packageType := stored.PackageDetails().Type()
	packageWeight := stored.PackageDetails().Weight()
	packageDescription := stored.PackageDetails().Description()
	fee := stored.Fee()
	currentStatus := stored.CurrentStatus()
	isBlocked := stored.IsBlocked()
	expectedDeliveryDate := stored.ExpectedDeliveryDate()
	actualDeliveryDate := stored.ActualDeliveryDate()

	for _, field := range fields {
		switch field.Path {
		case parcel.FieldReceiverName:
			receiverName = field.Value.(string)
		case parcel.FieldReceiverPhone:
			receiverPhone = field.Value.(string)
		case parcel.FieldReceiverAddress:
			receiverAddress = field.Value.(string)
		case parcel.FieldReceiverEmail:
			receiverEmail = field.Value.(string)
		case parcel.FieldPackageType:
			packageType = field.Value.(parcel.PackageType)
		case parcel.FieldPackageWeight:
			packageWeight = field.Value.(float64)
		case parcel.FieldPackageDescription:
			packageDescription = field.Value.(string)
		case parcel.FieldFee:
			fee = field.Value.(float64)
		case parcel.FieldCurrentStatus:
			currentStatus = field.Value.(parcel.Status)
		case parcel.FieldIsBlocked:
			isBlocked = field.Value.(bool)
		case parcel.FieldExpectedDeliveryDate:
			value := field.Value.(time.Time)
			expectedDeliveryDate = &value
		case parcel.FieldActualDeliveryDate:
			value := field.Value.(time.Time)
			actualDeliveryDate = &value
		default:
			return nil, errs.NewValueIsInvalidError(fmt.Sprintf("field path %s", field.Path))
		}
	}

	receiver, err := parcel.NewReceiver(receiverName, receiverPhone, receiverAddress, receiverEmail)
	if err != nil {
		return nil, err
	}

	packageDetails, err := parcel.NewPackageDetails(packageType, packageWeight, packageDescription)
	if err != nil {
		return nil, err
	}

	statusLog := stored.StatusLog()
	if logEntry != nil {
		statusLog = append(statusLog, *logEntry)
	}

	return parcel.RestoreParcel(
		stored.TrackingID(),
		stored.SenderID(),
		receiver,
		packageDetails,
		fee,
		currentStatus,
		statusLog,
		isBlocked,
		expectedDeliveryDate,
		actualDeliveryDate,
		stored.CreatedAt(),
	)
}
