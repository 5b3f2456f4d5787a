// Package errs provides standardized error types for the parcel tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValueIsInvalidError / ValueIsRequiredError / ValueIsOutOfRangeError: For validation failures
//   - ForbiddenError: For role or state based authorization rejections
//   - ConflictError: For requests that conflict with the current system state
//   - UnavailableError: For infrastructure failures in repositories and collaborators
//   - TrackingIDAllocationExhaustedError: For an exhausted tracking-id retry budget
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrForbidden)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify by sentinel
//
// The HTTP adapter maps these sentinels to status codes; business code only ever
// deals with the error kind, never with transport concerns.
package errs
