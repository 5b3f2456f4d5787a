package queries

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrGetOverdueParcelsQueryIsNotConstructed = errors.New(
	"GetOverdueParcelsQuery must be created via NewGetOverdueParcelsQuery constructor",
)

// GetOverdueParcelsQuery retrieves parcels whose expected delivery date has
// passed while they are still moving. Used by the overdue watchdog job.
type GetOverdueParcelsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueParcelsQuery creates a query evaluating overdue status as of
// the given instant.
func NewGetOverdueParcelsQuery(asOf time.Time) (GetOverdueParcelsQuery, error) {
	if asOf.IsZero() {
		return GetOverdueParcelsQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueParcelsQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueParcelsQueryIsNotConstructed)
}

// AsOf returns the instant overdue status is evaluated against.
func (q GetOverdueParcelsQuery) AsOf() time.Time {
	return q.asOf
}

// OverdueParcelResponse is one overdue parcel in the watchdog read model.
type OverdueParcelResponse struct {
	TrackingID           string
	Status               string
	ReceiverEmail        string
	ExpectedDeliveryDate time.Time
}
