// Package booking contains the booking aggregate and its lifecycle state
// machine. A booking is the durable record of one attempt to hand a
// shipment to a courier provider: either an automated API booking with a
// provider-issued AWB, or a degraded manual booking with an internal
// reference when the provider is down.
//
// The state machine makes degraded success explicit instead of overloading
// a success flag: callers can distinguish Confirmed from Degraded while
// the seller workflow proceeds in both cases.
package booking
