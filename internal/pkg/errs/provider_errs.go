package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrRateNotFound is the sentinel error for rate card misses.
	ErrRateNotFound = errors.New("rate not found")

	// ErrBookingConflict is the sentinel error for duplicate booking attempts.
	ErrBookingConflict = errors.New("booking already exists")

	// ErrAuthenticationFailed is the sentinel error for provider credential exchange failures.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrProviderAPI is the sentinel error for courier provider API failures.
	ErrProviderAPI = errors.New("provider api error")

	// ErrProviderTimeout is the sentinel error for courier provider timeouts.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrNotServiceable is the sentinel error for pincodes a provider does not serve.
	ErrNotServiceable = errors.New("pincode is not serviceable")
)

// RateNotFoundError indicates that a rate card has no entry for the
// requested zone. It is surfaced to the caller and never retried.
type RateNotFoundError struct {
	Provider string
	Zone     string
}

// NewRateNotFoundError creates a RateNotFoundError for a provider and zone.
func NewRateNotFoundError(provider, zone string) RateNotFoundError {
	return RateNotFoundError{Provider: provider, Zone: zone}
}

func (e RateNotFoundError) Error() string {
	return sanitize(fmt.Sprintf("%s: zone is: %s, provider is: %s", ErrRateNotFound, e.Zone, e.Provider))
}

func (e RateNotFoundError) Unwrap() error {
	return ErrRateNotFound
}

// BookingConflictError indicates that a booking already exists for the
// source order. Bookings are at-most-once per order.
type BookingConflictError struct {
	OrderID string
}

// NewBookingConflictError creates a BookingConflictError for an order.
func NewBookingConflictError(orderID string) BookingConflictError {
	return BookingConflictError{OrderID: orderID}
}

func (e BookingConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: order is: %s", ErrBookingConflict, e.OrderID))
}

func (e BookingConflictError) Unwrap() error {
	return ErrBookingConflict
}

// AuthenticationError indicates that a provider's credential exchange failed.
type AuthenticationError struct {
	Provider string
	Cause    error
}

// NewAuthenticationError creates an AuthenticationError wrapping an underlying cause.
func NewAuthenticationError(provider string, cause error) AuthenticationError {
	return AuthenticationError{Provider: provider, Cause: cause}
}

func (e AuthenticationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: provider is: %s (cause: %s)", ErrAuthenticationFailed, e.Provider, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: provider is: %s", ErrAuthenticationFailed, e.Provider))
}

func (e AuthenticationError) Unwrap() error {
	return ErrAuthenticationFailed
}

// ProviderAPIError indicates that a provider endpoint returned a failure.
// StatusCode is zero for transport-level failures.
type ProviderAPIError struct {
	Provider   string
	StatusCode int
	Cause      error
}

// NewProviderAPIError creates a ProviderAPIError for a provider call.
func NewProviderAPIError(provider string, statusCode int, cause error) ProviderAPIError {
	return ProviderAPIError{Provider: provider, StatusCode: statusCode, Cause: cause}
}

func (e ProviderAPIError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: provider is: %s, status is: %d (cause: %s)",
			ErrProviderAPI, e.Provider, e.StatusCode, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: provider is: %s, status is: %d", ErrProviderAPI, e.Provider, e.StatusCode))
}

func (e ProviderAPIError) Unwrap() error {
	return ErrProviderAPI
}

// Transient reports whether the failure is worth a retry: server-side
// errors and transport failures are transient, 4xx responses are not.
func (e ProviderAPIError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ProviderTimeoutError indicates that a provider call exceeded its deadline.
type ProviderTimeoutError struct {
	Provider string
}

// NewProviderTimeoutError creates a ProviderTimeoutError for a provider.
func NewProviderTimeoutError(provider string) ProviderTimeoutError {
	return ProviderTimeoutError{Provider: provider}
}

func (e ProviderTimeoutError) Error() string {
	return sanitize(fmt.Sprintf("%s: provider is: %s", ErrProviderTimeout, e.Provider))
}

func (e ProviderTimeoutError) Unwrap() error {
	return ErrProviderTimeout
}

// ServiceabilityError indicates that a provider does not deliver to or
// pick up from the given pincode.
type ServiceabilityError struct {
	Provider string
	Pincode  string
}

// NewServiceabilityError creates a ServiceabilityError for a provider and pincode.
func NewServiceabilityError(provider, pincode string) ServiceabilityError {
	return ServiceabilityError{Provider: provider, Pincode: pincode}
}

func (e ServiceabilityError) Error() string {
	return sanitize(fmt.Sprintf("%s: pincode is: %s, provider is: %s", ErrNotServiceable, e.Pincode, e.Provider))
}

func (e ServiceabilityError) Unwrap() error {
	return ErrNotServiceable
}

// IsTransient reports whether err represents a failure that may clear on
// retry: provider timeouts, transport errors and 5xx responses. Validation
// failures and 4xx responses are permanent.
func IsTransient(err error) bool {
	var apiErr ProviderAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	if errors.Is(err, ErrProviderTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
