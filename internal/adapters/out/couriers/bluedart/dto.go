package bluedart

import "time"

type loginResponse struct {
	JWTToken string `json:"JWTToken"`
	Error    string `json:"error-response"`
}

type serviceabilityRequest struct {
	Pincode string `json:"pinCode"`
}

type serviceabilityResponse struct {
	ApexInbound   string `json:"ApexInbound"`
	ApexOutbound  string `json:"ApexOutbound"`
	GroundInbound string `json:"GroundInbound"`
	CODAvailable  string `json:"IsCODAvailable"`
}

type rateRequest struct {
	OriginPincode      string  `json:"OriginPincode"`
	DestinationPincode string  `json:"DestinationPincode"`
	WeightKg           float64 `json:"Weight"`
	ProductCode        string  `json:"ProductCode"`
	SubProductCode     string  `json:"SubProductCode"`
	CollectableAmount  float64 `json:"CollectableAmount"`
	DeclaredValue      float64 `json:"DeclaredValue"`
}

type rateResponse struct {
	BaseAmount    float64 `json:"BaseAmount"`
	CODCharge     float64 `json:"CODCharge"`
	FuelSurcharge float64 `json:"FuelSurcharge"`
	TaxAmount     float64 `json:"TaxAmount"`
	TotalAmount   float64 `json:"TotalAmount"`
	TransitDays   int     `json:"TransitDays"`
}

type waybillRequest struct {
	OriginPincode      string  `json:"OriginPincode"`
	DestinationPincode string  `json:"DestinationPincode"`
	WeightKg           float64 `json:"Weight"`
	ProductCode        string  `json:"ProductCode"`
	SubProductCode     string  `json:"SubProductCode"`
	CollectableAmount  float64 `json:"CollectableAmount"`
	DeclaredValue      float64 `json:"DeclaredValue"`
}

type waybillResponse struct {
	AWBNo        string `json:"AWBNo"`
	IsError      bool   `json:"IsError"`
	ErrorMessage string `json:"ErrorMessage"`
}

type trackResponse struct {
	Shipments []struct {
		AWBNo      string `json:"AWBNo"`
		StatusType string `json:"StatusType"`
		Scans      []struct {
			Status     string    `json:"Scan"`
			StatusType string    `json:"ScanType"`
			Location   string    `json:"ScannedLocation"`
			ScanTime   time.Time `json:"ScanDateTime"`
		} `json:"Scans"`
	} `json:"Shipments"`
}

type cancelRequest struct {
	AWBNo string `json:"AWBNo"`
}

type cancelResponse struct {
	IsError bool   `json:"IsError"`
	Status  string `json:"Status"`
}
