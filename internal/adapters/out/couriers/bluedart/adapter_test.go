package bluedart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/adapters/out/couriers/bluedart"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, handler http.Handler) *bluedart.Adapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return bluedart.NewAdapter(bluedart.Config{
		BaseURL:    server.URL,
		LicenceKey: "licence-key",
		LoginID:    "BOM12345",
	}, couriers.NewClient(2*time.Second), couriers.NewCredentialCache(0))
}

// loginAware answers the token login and delegates everything else.
func loginAware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/in/transportation/token/v1/login" {
			_, _ = w.Write([]byte(`{"JWTToken":"jwt-1"}`))
			return
		}
		next(w, r)
	}
}

func metroRequest(t *testing.T) shipment.Request {
	t.Helper()

	origin, err := kernel.NewPincode("110001")
	require.NoError(t, err)
	destination, err := kernel.NewPincode("400001")
	require.NoError(t, err)

	req, err := shipment.NewRequest(origin, destination, 1.0,
		shipment.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10},
		shipment.COD, 1500, 1500)
	require.NoError(t, err)
	return req
}

func TestAdapter_Authenticate(t *testing.T) {
	t.Run("should exchange licence key for jwt", func(t *testing.T) {
		adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/in/transportation/token/v1/login", r.URL.Path)
			assert.Equal(t, "BOM12345", r.Header.Get("ClientID"))
			assert.Equal(t, "licence-key", r.Header.Get("clientSecret"))

			_, _ = w.Write([]byte(`{"JWTToken":"jwt-1"}`))
		}))

		cred, err := adapter.Authenticate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "jwt-1", cred.Token)
		assert.True(t, cred.ExpiresAt.After(time.Now()))
	})

	t.Run("should map rejected licence to AuthenticationError", func(t *testing.T) {
		adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error-response":"invalid licence"}`, http.StatusUnauthorized)
		}))

		_, err := adapter.Authenticate(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should fail on empty token in response", func(t *testing.T) {
		adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error-response":"licence expired"}`))
		}))

		_, err := adapter.Authenticate(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "licence expired")
	})

	t.Run("should keep server failures transient", func(t *testing.T) {
		adapter := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))

		_, err := adapter.Authenticate(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrProviderAPI)
		assert.True(t, errs.IsTransient(err))
	})
}

func TestAdapter_CheckServiceability(t *testing.T) {
	adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/in/transportation/finder/v1/GetServicesforPincode", r.URL.Path)
		assert.Equal(t, "jwt-1", r.Header.Get("JWTToken"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "400001", body["pinCode"])

		_, _ = w.Write([]byte(`{"ApexInbound":"Y","ApexOutbound":"Y","GroundInbound":"N","IsCODAvailable":"N"}`))
	}))

	pin, err := kernel.NewPincode("400001")
	require.NoError(t, err)

	got, err := adapter.CheckServiceability(context.Background(), pin)

	require.NoError(t, err)
	assert.True(t, got.Serviceable)
	assert.False(t, got.CODAvailable)
	assert.True(t, got.PickupAvailable)
}

func TestAdapter_Quote(t *testing.T) {
	t.Run("should map itemized live rate", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/in/transportation/rate/v1/GetDomesticRate", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "A", body["ProductCode"])
			assert.Equal(t, "C", body["SubProductCode"])
			assert.InDelta(t, 1500.0, body["CollectableAmount"].(float64), 1e-9)

			_, _ = w.Write([]byte(`{"BaseAmount":280,"CODCharge":50,"FuelSurcharge":46,
				"TaxAmount":36,"TotalAmount":412,"TransitDays":2}`))
		}))

		got, err := adapter.Quote(context.Background(), metroRequest(t))

		require.NoError(t, err)
		assert.Equal(t, bluedart.ProviderName, got.ProviderName)
		assert.Equal(t, quote.Air, got.Mode)
		assert.Equal(t, zone.MetroToMetro, got.Zone)
		assert.InDelta(t, 280.0, got.Breakdown.BaseRate, 1e-9)
		assert.InDelta(t, 412.0, got.Breakdown.Total, 1e-9)
		assert.Equal(t, 2, got.EstimatedDeliveryDays)
	})

	t.Run("should miss on non-positive total", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"TotalAmount":0}`))
		}))

		_, err := adapter.Quote(context.Background(), metroRequest(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrRateNotFound)
	})
}

func TestAdapter_Book(t *testing.T) {
	t.Run("should generate waybill", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/in/transportation/waybill/v1/GenerateWayBill", r.URL.Path)
			_, _ = w.Write([]byte(`{"AWBNo":"69012345678","IsError":false}`))
		}))

		got, err := adapter.Book(context.Background(), metroRequest(t), quote.RateQuote{ChargeableWeightKg: 1.0})

		require.NoError(t, err)
		assert.Equal(t, "69012345678", got.AWB)
		assert.Contains(t, got.TrackingURL, "69012345678")
	})

	t.Run("should fail on in-band waybill rejection", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"IsError":true,"ErrorMessage":"pickup area not served"}`))
		}))

		_, err := adapter.Book(context.Background(), metroRequest(t), quote.RateQuote{ChargeableWeightKg: 1.0})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrProviderAPI)
		assert.Contains(t, err.Error(), "pickup area not served")
	})
}

func TestAdapter_Track(t *testing.T) {
	t.Run("should normalize scan vocabulary", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/in/transportation/tracking/v1/shipment", r.URL.Path)
			assert.Equal(t, "69012345678", r.URL.Query().Get("awb"))

			_, _ = w.Write([]byte(`{"Shipments":[{"AWBNo":"69012345678","StatusType":"OD","Scans":[
				{"Scan":"Shipment picked up","ScanType":"PU","ScannedLocation":"Delhi Hub","ScanDateTime":"2026-08-21T08:00:00Z"},
				{"Scan":"Shipment further connected","ScanType":"IT","ScannedLocation":"Mumbai Apex","ScanDateTime":"2026-08-22T04:30:00Z"},
				{"Scan":"Out for delivery","ScanType":"OD","ScannedLocation":"Mumbai South","ScanDateTime":"2026-08-22T09:10:00Z"}
			]}]}`))
		}))

		got, err := adapter.Track(context.Background(), "69012345678")

		require.NoError(t, err)
		assert.Equal(t, booking.StatusOutForDelivery, got.Status)
		require.Len(t, got.Events, 3)
		assert.Equal(t, booking.StatusBooked, got.Events[0].Status)
		assert.Equal(t, booking.StatusInTransit, got.Events[1].Status)
		assert.Equal(t, booking.StatusOutForDelivery, got.Events[2].Status)
	})

	t.Run("should map return scan to exception and unknown code to unknown", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Shipments":[{"AWBNo":"69012345678","StatusType":"RT","Scans":[
				{"Scan":"Consignee unavailable","ScanType":"UD","ScannedLocation":"Mumbai South","ScanDateTime":"2026-08-22T18:00:00Z"},
				{"Scan":"Custom milestone","ScanType":"XX","ScannedLocation":"Mumbai South","ScanDateTime":"2026-08-22T18:05:00Z"}
			]}]}`))
		}))

		got, err := adapter.Track(context.Background(), "69012345678")

		require.NoError(t, err)
		assert.Equal(t, booking.StatusException, got.Status)
		assert.Equal(t, booking.StatusException, got.Events[0].Status)
		assert.Equal(t, booking.StatusUnknown, got.Events[1].Status)
	})

	t.Run("should fail for unknown awb", func(t *testing.T) {
		adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Shipments":[]}`))
		}))

		_, err := adapter.Track(context.Background(), "0000000000000")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestAdapter_Cancel(t *testing.T) {
	adapter := newAdapter(t, loginAware(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/in/transportation/waybill/v1/CancelWaybill", r.URL.Path)
		_, _ = w.Write([]byte(`{"IsError":false,"Status":"Waybill cancelled"}`))
	}))

	got, err := adapter.Cancel(context.Background(), "69012345678")

	require.NoError(t, err)
	assert.True(t, got.Cancelled)
	assert.Equal(t, "Waybill cancelled", got.Message)
}
