// Package services provides domain services that implement business rules
// spanning the parcel and user models.
//
// The package includes:
//   - TransitionPolicy: The pure authorization-and-mutation function deciding
//     which role may move a parcel between which states, what side effects a
//     transition produces, and which field writes each role may apply
//
// The policy returns decisions as values (Authorized or Rejected) instead of
// errors, keeping every role arm exhaustively unit-testable without any
// transport or storage involvement.
package services
