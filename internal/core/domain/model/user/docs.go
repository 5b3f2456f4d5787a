// Package user provides the account model and the closed role set that gates
// every parcel mutation.
//
// The package includes:
//   - User: An account entity referenced by parcels and actors
//   - Role: The closed authorization role enum (SUPER_ADMIN, ADMIN, SENDER,
//     DELIVERY_MAN, RECEIVER)
//   - Actor: The authenticated principal (user id + role) evaluated by the
//     transition policy
//
// Authentication itself is out of scope: actors arrive pre-verified from the
// HTTP boundary, and this package only models who they are.
package user
