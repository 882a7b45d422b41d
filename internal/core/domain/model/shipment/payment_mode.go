package shipment

import (
	"fmt"
	"strings"

	"courierhub/internal/pkg/errs"
)

// PaymentMode identifies how the consignee pays for a shipment.
type PaymentMode int

const (
	// UnknownPaymentMode represents an invalid or undefined payment mode.
	// This value (0) helps catch uninitialized PaymentMode values.
	UnknownPaymentMode PaymentMode = iota

	// COD is cash-on-delivery: the courier collects the order value on delivery.
	COD

	// Prepaid means the order was paid online before shipping.
	Prepaid
)

func getPaymentModeStrings() map[PaymentMode]string {
	return map[PaymentMode]string{
		UnknownPaymentMode: "Unknown",
		COD:                "COD",
		Prepaid:            "Prepaid",
	}
}

// ParsePaymentMode converts the wire form of a payment mode ("cod" or
// "prepaid", case-insensitive) into a PaymentMode.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(s) {
	case "cod":
		return COD, nil
	case "prepaid":
		return Prepaid, nil
	default:
		return UnknownPaymentMode, errs.NewValueIsInvalidErrorWithCause("payment mode",
			fmt.Errorf("%q is not a valid payment mode", s))
	}
}

// Validate checks if the PaymentMode value is valid.
// Valid modes are COD and Prepaid; Unknown (0) is invalid.
func (m PaymentMode) Validate() error {
	if m != COD && m != Prepaid {
		return errs.NewValueIsInvalidErrorWithCause("payment mode is invalid",
			fmt.Errorf("%d is not a valid payment mode", m))
	}
	return nil
}

// String returns the human-readable name of the payment mode.
func (m PaymentMode) String() string {
	if str, ok := getPaymentModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
