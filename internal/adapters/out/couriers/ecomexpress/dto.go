package ecomexpress

import "time"

type pincodeEntry struct {
	Pincode string `json:"pincode"`
	Active  string `json:"active"`
	COD     string `json:"cod"`
	Pickup  string `json:"pickup"`
}

type manifestEntry struct {
	PickupPincode    string  `json:"pickup_pincode"`
	DropPincode      string  `json:"drop_pincode"`
	WeightKg         float64 `json:"weight"`
	PaymentMode      string  `json:"payment_mode"`
	CollectableValue float64 `json:"collectable_value"`
	DeclaredValue    float64 `json:"declared_value"`
}

type manifestResponse struct {
	Shipments []struct {
		Success bool   `json:"success"`
		AWB     string `json:"awb"`
		Reason  string `json:"reason"`
	} `json:"shipments"`
}

func (r manifestResponse) firstReason() string {
	if len(r.Shipments) == 0 {
		return "empty shipment list"
	}
	return r.Shipments[0].Reason
}

type trackResponse struct {
	Shipments []struct {
		AWB    string `json:"awb"`
		Status string `json:"status"`
		Scans  []struct {
			Status    string    `json:"status"`
			Remark    string    `json:"remark"`
			Location  string    `json:"location"`
			UpdatedOn time.Time `json:"updated_on"`
		} `json:"scans"`
	} `json:"shipments"`
}

type cancelEntry struct {
	AWB     string `json:"awb"`
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}
