// Package kernel provides shared value objects used across the domain model.
//
// The package includes:
//   - UUID: A validated wrapper around universally unique identifiers
//   - TrackingID: The public parcel identifier in TRK-XXXXXXXX-XXXXXXXX format
//
// All kernel types are immutable value objects created through constructor
// functions that enforce validation. Zero values are invalid and detectable
// via each type's Validate method.
package kernel
