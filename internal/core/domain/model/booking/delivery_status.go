package booking

// DeliveryStatus is the normalized shipment status vocabulary shared by all
// provider adapters. Each adapter maps its courier's own status strings
// into this enum; anything unrecognized maps to StatusUnknown rather than
// failing the tracking call.
type DeliveryStatus int

const (
	// StatusUnknown is any courier status not covered by the shared vocabulary.
	StatusUnknown DeliveryStatus = iota

	// StatusBooked means the shipment is registered but not yet picked up.
	StatusBooked

	// StatusInTransit means the shipment is moving through the network.
	StatusInTransit

	// StatusOutForDelivery means the shipment is on the last-mile run.
	StatusOutForDelivery

	// StatusDelivered means the shipment reached the consignee.
	StatusDelivered

	// StatusException means delivery is blocked (address issue, damage, RTO).
	StatusException

	// StatusCancelled means the shipment was cancelled before delivery.
	StatusCancelled
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		StatusUnknown:        "Unknown",
		StatusBooked:         "Booked",
		StatusInTransit:      "InTransit",
		StatusOutForDelivery: "OutForDelivery",
		StatusDelivered:      "Delivered",
		StatusException:      "Exception",
		StatusCancelled:      "Cancelled",
	}
}

// String returns the human-readable name of the delivery status.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
