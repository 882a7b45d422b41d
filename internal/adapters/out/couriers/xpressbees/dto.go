package xpressbees

import "time"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status  bool   `json:"status"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

type serviceabilityResponse struct {
	Status bool `json:"status"`
	Data   []struct {
		COD     int `json:"cod"`
		Prepaid int `json:"prepaid"`
		Pickup  int `json:"pickup"`
	} `json:"data"`
}

type shipmentRequest struct {
	OriginPincode      string  `json:"origin_pincode"`
	DestinationPincode string  `json:"destination_pincode"`
	WeightKg           float64 `json:"weight"`
	PaymentType        string  `json:"payment_type"`
	CollectableAmount  float64 `json:"collectable_amount"`
	DeclaredValue      float64 `json:"order_amount"`
}

type shipmentResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AWBNumber string `json:"awb_number"`
	} `json:"data"`
}

type trackResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status  string `json:"status"`
		History []struct {
			StatusCode string    `json:"status_code"`
			Message    string    `json:"message"`
			Location   string    `json:"location"`
			EventTime  time.Time `json:"event_time"`
		} `json:"history"`
	} `json:"data"`
}

type cancelRequest struct {
	AWB string `json:"awb"`
}

type cancelResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}
