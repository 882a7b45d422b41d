package quote

import (
	"fmt"
	"strings"

	"courierhub/internal/pkg/errs"
)

// ServiceMode identifies the transport mode a courier quotes for.
type ServiceMode int

const (
	// UnknownServiceMode represents an invalid or undefined service mode.
	UnknownServiceMode ServiceMode = iota

	// Surface is ground transport: cheaper and slower.
	Surface

	// Air is air transport: faster and more expensive.
	Air
)

// ParseServiceMode converts the wire form of a service mode
// ("surface" or "air", case-insensitive) into a ServiceMode.
func ParseServiceMode(s string) (ServiceMode, error) {
	switch strings.ToLower(s) {
	case "surface":
		return Surface, nil
	case "air":
		return Air, nil
	default:
		return UnknownServiceMode, errs.NewValueIsInvalidErrorWithCause("service mode",
			fmt.Errorf("%q is not a valid service mode", s))
	}
}

// Validate checks if the ServiceMode value is valid.
func (m ServiceMode) Validate() error {
	if m != Surface && m != Air {
		return errs.NewValueIsInvalidErrorWithCause("service mode is invalid",
			fmt.Errorf("%d is not a valid service mode", m))
	}
	return nil
}

// String returns the human-readable name of the service mode.
func (m ServiceMode) String() string {
	switch m {
	case Surface:
		return "Surface"
	case Air:
		return "Air"
	default:
		return "Unknown"
	}
}
