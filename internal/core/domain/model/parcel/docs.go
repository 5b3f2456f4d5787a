// Package parcel provides the domain entities and business rules for parcel
// tracking. It implements the Parcel aggregate root with its append-only
// status log and the lifecycle state machine.
//
// The package includes:
//   - Parcel: The aggregate root holding receiver, package, fee and audit trail
//   - Status: The lifecycle state set (REQUESTED through DELIVERED plus the
//     terminal CANCELLED and RETURNED states)
//   - StatusLogEntry: One immutable audit-trail record per transition
//   - Receiver, PackageDetails: Validated value objects
//   - Mutation, FieldSet: The proposed-change and authorized-change shapes
//     exchanged with the transition policy
//
// Key business rules:
//   - The status log is never empty and its last entry matches currentStatus
//   - The tracking id is assigned once, at creation, and never changes
//   - actualDeliveryDate is stamped by the system on delivery, exactly once
//   - Who may change what is not decided here: see the transition policy in
//     the domain services package
package parcel
