package parcel

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// MaxNoteLength bounds the free-text note attached to a log entry.
const MaxNoteLength = 500

// ErrStatusLogEntryIsNotConstructed is returned when a StatusLogEntry was not
// created via NewStatusLogEntry.
var ErrStatusLogEntryIsNotConstructed = errs.NewValueIsRequiredError(
	"StatusLogEntry must be created via NewStatusLogEntry")

// StatusLogEntry is one immutable record in a parcel's audit trail. Entries
// are append-only and their insertion order is the order of transitions; the
// last entry's status always equals the parcel's current status.
type StatusLogEntry struct {
	status    Status
	updatedBy kernel.UUID
	note      string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewStatusLogEntry creates a validated log entry.
// The note is optional; createdAt must be a non-zero timestamp.
func NewStatusLogEntry(status Status, updatedBy kernel.UUID, note string, createdAt time.Time) (StatusLogEntry, error) {
	if err := status.Validate(); err != nil {
		return StatusLogEntry{}, err
	}

	if err := updatedBy.Validate(); err != nil {
		return StatusLogEntry{}, err
	}

	if len(note) > MaxNoteLength {
		return StatusLogEntry{}, errs.NewValueIsOutOfRangeError(
			"note length", len(note), 0, MaxNoteLength)
	}

	if createdAt.IsZero() {
		return StatusLogEntry{}, errs.NewValueIsRequiredError("createdAt")
	}

	return StatusLogEntry{
		status:    status,
		updatedBy: updatedBy,
		note:      note,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through NewStatusLogEntry.
func (e StatusLogEntry) Validate() error {
	return e.guard.Validate(ErrStatusLogEntryIsNotConstructed)
}

// Status returns the status recorded by this entry.
func (e StatusLogEntry) Status() Status {
	return e.status
}

// UpdatedBy returns the id of the actor that caused the transition.
func (e StatusLogEntry) UpdatedBy() kernel.UUID {
	return e.updatedBy
}

// Note returns the optional free-text note.
func (e StatusLogEntry) Note() string {
	return e.note
}

// CreatedAt returns when the transition was recorded.
func (e StatusLogEntry) CreatedAt() time.Time {
	return e.createdAt
}
