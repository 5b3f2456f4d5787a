package kernel

import (
	"fmt"
	"regexp"

	"parceltrack/internal/pkg/errs"
)

// ErrTrackingIDIsNotConstructed indicates that a TrackingID was not created through
// one of the constructor functions.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via TrackingIDFromString")

// trackingIDPattern is the wire format every tracking identifier must satisfy:
// a TRK prefix followed by two uppercase alphanumeric segments of 8 characters.
// The first segment is conventionally the creation date (YYYYMMDD), the second
// is random, but the format only constrains the alphabet and lengths.
var trackingIDPattern = regexp.MustCompile(`^TRK-[A-Z0-9]{8}-[A-Z0-9]{8}$`)

// TrackingID is a value object holding the public identifier of a parcel.
// It is assigned exactly once at parcel creation and never changes afterwards.
//
// TrackingID is immutable; the zero value is invalid and fails Validate.
type TrackingID struct {
	value string
}

// TrackingIDFromString parses and validates a tracking identifier.
// Returns an error when the string does not match TRK-XXXXXXXX-XXXXXXXX
// (uppercase alphanumeric segments).
func TrackingIDFromString(s string) (TrackingID, error) {
	if s == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}

	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match TRK-XXXXXXXX-XXXXXXXX", s))
	}

	return TrackingID{value: s}, nil
}

// String returns the wire representation, e.g. "TRK-20250831-A1B2C3D4".
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares two tracking identifiers for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate checks that the TrackingID was created through a constructor function.
func (t TrackingID) Validate() error {
	if t.value == "" {
		return ErrTrackingIDIsNotConstructed
	}
	return nil
}
