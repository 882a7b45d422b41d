// Package errs provides standardized error types for the courier hub.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types.
//
// Generic validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value lies outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Courier provider errors:
//   - RateNotFoundError: For rate card misses on a zone
//   - BookingConflictError: For duplicate booking attempts on one order
//   - AuthenticationError: For failed provider credential exchanges
//   - ProviderAPIError / ProviderTimeoutError: For provider endpoint failures
//   - ServiceabilityError: For pincodes a provider does not serve
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrRateNotFound)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where applicable
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Provider errors additionally classify themselves as transient or permanent
// via IsTransient, which drives the retry policy in the aggregation layer.
package errs
