package delhivery

import "time"

type pincodeResponse struct {
	DeliveryCodes []struct {
		PostalCode struct {
			Pin     int    `json:"pin"`
			COD     string `json:"cod"`
			PrePaid string `json:"pre_paid"`
			Pickup  string `json:"pickup"`
		} `json:"postal_code"`
	} `json:"delivery_codes"`
}

type chargeResponse struct {
	TotalAmount float64 `json:"total_amount"`
	CODCharge   float64 `json:"charge_COD"`
}

type manifestRequest struct {
	PickupLocation pickupLocation     `json:"pickup_location"`
	Shipments      []manifestShipment `json:"shipments"`
}

type pickupLocation struct {
	Name string `json:"name"`
}

type manifestShipment struct {
	OriginPin      string  `json:"origin_pin"`
	DestinationPin string  `json:"destination_pin"`
	WeightGrams    int     `json:"weight"`
	PaymentMode    string  `json:"payment_mode"`
	CODAmount      float64 `json:"cod_amount"`
	DeclaredValue  float64 `json:"declared_value"`
}

type manifestResponse struct {
	Packages manifestPackages `json:"packages"`
}

type manifestPackages []struct {
	Waybill string `json:"waybill"`
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

func (p manifestPackages) firstRemark() string {
	if len(p) == 0 {
		return "empty package list"
	}
	return p[0].Remarks
}

type trackResponse struct {
	ShipmentData []struct {
		Shipment struct {
			Status struct {
				Status string `json:"Status"`
			} `json:"Status"`
			Scans []struct {
				Detail scanDetail `json:"ScanDetail"`
			} `json:"Scans"`
		} `json:"Shipment"`
	} `json:"ShipmentData"`
}

type scanDetail struct {
	Status       string    `json:"Scan"`
	Instructions string    `json:"Instructions"`
	Location     string    `json:"ScannedLocation"`
	ScanDateTime time.Time `json:"ScanDateTime"`
}

type cancelRequest struct {
	Waybill      string `json:"waybill"`
	Cancellation string `json:"cancellation"`
}

type cancelResponse struct {
	Status bool   `json:"status"`
	Remark string `json:"remark"`
}
