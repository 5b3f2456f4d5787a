// Package ports defines the contracts between the application core and
// infrastructure adapters. These interfaces establish dependency inversion:
// the core owns the contract, the adapters implement it.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Parcels are keyed by their public tracking id. There is no delete method:
// cancellation and return are status transitions, not removals.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// Returns a conflict error if the tracking id is already taken, so
	// callers can retry id allocation on a lost race.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its tracking id.
	// Returns an object-not-found error if no parcel carries the id.
	Get(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	// Exists reports whether a parcel with the given tracking id is stored.
	// Used by the id allocator to probe candidates before inserting.
	Exists(ctx context.Context, trackingID kernel.TrackingID) (bool, error)

	// ConditionalUpdate atomically applies the authorized field assignments
	// and, when logEntry is non-nil, appends it to the status log. Both
	// writes happen in one transaction or not at all. Returns the parcel as
	// stored after the update, or an object-not-found error if the parcel
	// disappeared between load and update.
	ConditionalUpdate(
		ctx context.Context,
		trackingID kernel.TrackingID,
		fields parcel.FieldSet,
		logEntry *parcel.StatusLogEntry,
	) (*parcel.Parcel, error)
}
