package kernel

import (
	"fmt"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

// PincodeLength is the number of digits in an Indian postal pincode.
const PincodeLength = 6

// ErrPincodeIsNotConstructed is returned when attempting to use an improperly
// initialized Pincode. Pincodes must be created via NewPincode.
var ErrPincodeIsNotConstructed = errs.NewValueIsRequiredError(
	"pincode must be created via NewPincode constructor")

// Pincode is an immutable value object representing a 6-digit Indian postal
// code. The zero value is invalid and fails validation - use NewPincode.
//
// Prefixes of a pincode carry geographic meaning and drive zone resolution:
// the first two digits identify the postal circle (roughly the state), the
// first three digits identify the sorting district (roughly the city).
//
// Example:
//
//	pin, err := kernel.NewPincode("110001")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(pin.CityPrefix()) // Output: 110
type Pincode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewPincode creates a Pincode from its string form. The input must be
// exactly six numeric digits; anything else fails with a validation error.
func NewPincode(value string) (Pincode, error) {
	pin := Pincode{
		guard: guard.NewConstructorGuard(),
	}

	if err := pin.setValue(value); err != nil {
		return Pincode{}, err
	}

	return pin, nil
}

// Validate checks if the Pincode was properly constructed via NewPincode.
func (p Pincode) Validate() error {
	return p.guard.Validate(ErrPincodeIsNotConstructed)
}

// String returns the 6-digit string form of the pincode.
func (p Pincode) String() string {
	return p.value
}

// StatePrefix returns the first two digits, identifying the postal circle.
func (p Pincode) StatePrefix() string {
	return p.value[:2]
}

// CityPrefix returns the first three digits, identifying the sorting district.
func (p Pincode) CityPrefix() string {
	return p.value[:3]
}

// IsEqual compares two pincodes for equality. Both must be properly
// constructed for the comparison to succeed.
func (p Pincode) IsEqual(other Pincode) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return p.value == other.value, nil
}

func (p *Pincode) setValue(value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError("pincode")
	}

	if len(value) != PincodeLength {
		return errs.NewValueIsInvalidErrorWithCause("pincode",
			fmt.Errorf("%q is not %d characters long", value, PincodeLength))
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pincode",
				fmt.Errorf("%q contains a non-numeric character", value))
		}
	}

	p.value = value
	return nil
}
