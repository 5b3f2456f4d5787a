package ports

import (
	"context"
	"time"
)

// ParcelStatusEvent notifies downstream consumers that a parcel changed
// status. Emitted after the transition has been committed.
type ParcelStatusEvent struct {
	TrackingID     string    `json:"trackingId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
	UpdatedBy      string    `json:"updatedBy"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// StatusPublisher delivers parcel status events to the message broker.
// Publishing is best effort: a failed publish must not roll back the
// committed transition.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, event ParcelStatusEvent) error
}
