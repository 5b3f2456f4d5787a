package ports

import (
	"parceltrack/internal/core/domain/model/kernel"
)

// TrackingIDGenerator produces candidate tracking ids. Candidates are random,
// so uniqueness is probabilistic and callers must handle collisions by
// probing storage and regenerating.
type TrackingIDGenerator interface {
	Generate() (kernel.TrackingID, error)
}
