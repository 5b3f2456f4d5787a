package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// State transitions:
//
//	Requested ──> Approved ──> Picked ──> InTransit ──> Delivered
//	    │                        │            │             │
//	    └──> Cancelled           └────────────┴─────────────┴──> Returned
//
// Delivered, Cancelled and Returned are terminal: no role other than an
// administrator can move a parcel out of them, and administrators only do so
// for corrections (e.g. returning a delivered parcel). Who may set which
// target status is decided by the transition policy, not by this type; Status
// only knows the state set and which states are terminal.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Requested is the initial status when a sender files a delivery request.
	Requested

	// Approved indicates an administrator accepted the delivery request.
	Approved

	// Picked indicates a delivery man collected the parcel from the sender.
	Picked

	// InTransit indicates the parcel is on its way to the receiver.
	InTransit

	// Delivered indicates the parcel reached the receiver. Terminal.
	Delivered

	// Cancelled indicates the sender withdrew the request. Terminal,
	// reachable only from Requested.
	Cancelled

	// Returned indicates the parcel went back to the sender. Terminal.
	Returned
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Requested:     "REQUESTED",
		Approved:      "APPROVED",
		Picked:        "PICKED",
		InTransit:     "IN_TRANSIT",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
		Returned:      "RETURNED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Requested: "REQUESTED",
		Approved:  "APPROVED",
		Picked:    "PICKED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		Returned:  "RETURNED",
	}
}

// StatusFromString parses a wire-format status name into a Status.
// Returns an error for names outside the status set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status, e.g. "IN_TRANSIT".
// Returns "UNKNOWN" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions for
// non-administrative roles. Delivered, Cancelled and Returned are terminal.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}
