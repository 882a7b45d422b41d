package booking

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking attempt.
// It implements a state machine with defined transitions so degraded
// bookings are distinguishable from true successes.
//
// State transitions:
//
//	Requested ──> Authenticating ──> BookingInProgress ──> Confirmed
//	                   │                │
//	                   │                ├──────> Degraded
//	                   └──> Degraded    └──────> Failed
//
// Confirmed, Degraded and Failed are final states.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Requested is the initial status of a booking attempt.
	Requested

	// Authenticating means the provider credential exchange is in progress.
	Authenticating

	// BookingInProgress means the provider's booking endpoint is being called.
	BookingInProgress

	// Confirmed means the provider issued an AWB and the booking is live.
	Confirmed

	// Degraded means the provider call failed and the shipment fell back
	// to a manual booking with an internal reference. The seller workflow
	// continues; this is a deliberate policy, not an error.
	Degraded

	// Failed means the booking attempt ended without any usable result.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:     "Unknown",
		Requested:         "Requested",
		Authenticating:    "Authenticating",
		BookingInProgress: "BookingInProgress",
		Confirmed:         "Confirmed",
		Degraded:          "Degraded",
		Failed:            "Failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Requested || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status permits no further transitions.
func (s Status) IsFinal() bool {
	return s == Confirmed || s == Degraded || s == Failed
}

// Authenticate transitions the status to Authenticating.
// Only valid from Requested.
func (s Status) Authenticate() (Status, error) {
	if s != Requested {
		return 0, s.transitionError("authenticate")
	}
	return Authenticating, nil
}

// Book transitions the status to BookingInProgress.
// Only valid from Authenticating.
func (s Status) Book() (Status, error) {
	if s != Authenticating {
		return 0, s.transitionError("book")
	}
	return BookingInProgress, nil
}

// Confirm transitions the status to Confirmed.
// Only valid from BookingInProgress.
func (s Status) Confirm() (Status, error) {
	if s != BookingInProgress {
		return 0, s.transitionError("confirm")
	}
	return Confirmed, nil
}

// Degrade transitions the status to Degraded. A booking can degrade while
// authenticating (credential exchange failed) or while booking (provider
// endpoint failed).
func (s Status) Degrade() (Status, error) {
	if s != Authenticating && s != BookingInProgress {
		return 0, s.transitionError("degrade")
	}
	return Degraded, nil
}

// Fail transitions the status to Failed.
// Valid from any non-final state.
func (s Status) Fail() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsFinal() {
		return 0, s.transitionError("fail")
	}
	return Failed, nil
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action))
}
