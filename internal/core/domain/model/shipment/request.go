package shipment

import (
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned when a Request was not created
// through the NewRequest constructor.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Dimensions are a parcel's outer dimensions in centimetres.
// All three sides must be positive.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// Request is an immutable shipment description used as input for rate
// aggregation and booking. It is created per call and discarded after use.
//
// Invariants:
//   - Origin and destination pincodes are valid 6-digit pincodes
//   - Actual weight is positive
//   - All parcel dimensions are positive
//   - COD shipments carry a positive collectable amount
type Request struct { //nolint:recvcheck //using for validation
	origin        kernel.Pincode
	destination   kernel.Pincode
	actualKg      float64
	dims          Dimensions
	paymentMode   PaymentMode
	declaredValue float64
	codAmount     float64

	guard guard.ConstructorGuard
}

// NewRequest creates a shipment Request with full validation.
// declaredValue is the parcel's declared value in INR; codAmount is the
// amount the courier collects on delivery and must be positive for COD
// shipments and zero for prepaid ones.
func NewRequest(
	origin kernel.Pincode,
	destination kernel.Pincode,
	actualKg float64,
	dims Dimensions,
	paymentMode PaymentMode,
	declaredValue float64,
	codAmount float64,
) (Request, error) {
	req := Request{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		req.setPincodes(origin, destination),
		req.setWeight(actualKg),
		req.setDimensions(dims),
		req.setPayment(paymentMode, declaredValue, codAmount),
	); err != nil {
		return Request{}, err
	}

	return req, nil
}

// Validate ensures the Request was created through NewRequest.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// Origin returns the pickup pincode.
func (r Request) Origin() kernel.Pincode {
	return r.origin
}

// Destination returns the delivery pincode.
func (r Request) Destination() kernel.Pincode {
	return r.destination
}

// ActualWeightKg returns the parcel's physical weight in kilograms.
func (r Request) ActualWeightKg() float64 {
	return r.actualKg
}

// Dimensions returns the parcel's outer dimensions in centimetres.
func (r Request) Dimensions() Dimensions {
	return r.dims
}

// PaymentMode returns the payment mode of the shipment.
func (r Request) PaymentMode() PaymentMode {
	return r.paymentMode
}

// DeclaredValue returns the declared parcel value in INR.
func (r Request) DeclaredValue() float64 {
	return r.declaredValue
}

// CODAmount returns the cash amount to collect on delivery.
// Zero for prepaid shipments.
func (r Request) CODAmount() float64 {
	return r.codAmount
}

func (r *Request) setPincodes(origin, destination kernel.Pincode) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	if err := destination.Validate(); err != nil {
		return err
	}

	r.origin = origin
	r.destination = destination
	return nil
}

func (r *Request) setWeight(actualKg float64) error {
	if actualKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is not greater than 0", actualKg))
	}

	r.actualKg = actualKg
	return nil
}

func (r *Request) setDimensions(dims Dimensions) error {
	if dims.LengthCm <= 0 || dims.WidthCm <= 0 || dims.HeightCm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions are invalid",
			fmt.Errorf("%gx%gx%g cm has a non-positive side", dims.LengthCm, dims.WidthCm, dims.HeightCm))
	}

	r.dims = dims
	return nil
}

func (r *Request) setPayment(mode PaymentMode, declaredValue, codAmount float64) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	if declaredValue < 0 {
		return errs.NewValueIsInvalidError("declared value")
	}

	if mode == COD && codAmount <= 0 {
		return errs.NewValueIsRequiredError("cod amount")
	}

	if mode == Prepaid && codAmount != 0 {
		return errs.NewValueIsInvalidErrorWithCause("cod amount",
			fmt.Errorf("prepaid shipment cannot collect %g on delivery", codAmount))
	}

	r.paymentMode = mode
	r.declaredValue = declaredValue
	r.codAmount = codAmount
	return nil
}
