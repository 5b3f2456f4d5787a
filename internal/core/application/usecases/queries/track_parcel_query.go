package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery retrieves a single parcel with its full status history.
// Tracking is public: the tracking id itself is the capability, so no actor
// is attached. Receivers without accounts follow their parcels this way.
type TrackParcelQuery struct { //nolint:recvcheck //using for validation
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a validated tracking query.
func NewTrackParcelQuery(trackingID kernel.TrackingID) (TrackParcelQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingID returns the id of the parcel to look up.
func (q TrackParcelQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// StatusLogEntryResponse is one audit-trail record in the read model.
type StatusLogEntryResponse struct {
	Status    string
	UpdatedBy kernel.UUID
	Note      string
	CreatedAt time.Time
}

// TrackParcelQueryResponse is the full parcel read model including the
// append-only status history in transition order.
type TrackParcelQueryResponse struct {
	TrackingID           string
	SenderID             kernel.UUID
	ReceiverName         string
	ReceiverPhone        string
	ReceiverAddress      string
	ReceiverEmail        string
	PackageType          string
	PackageWeight        float64
	PackageDescription   string
	Fee                  float64
	Status               string
	IsBlocked            bool
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	CreatedAt            time.Time
	StatusLog            []StatusLogEntryResponse
}
