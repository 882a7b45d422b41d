package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
	name string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Authenticate(ctx context.Context) (ports.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Credential), args.Error(1)
}

func (m *MockProvider) CheckServiceability(ctx context.Context, pin kernel.Pincode) (ports.ServiceabilityResult, error) {
	args := m.Called(ctx, pin)
	return args.Get(0).(ports.ServiceabilityResult), args.Error(1)
}

func (m *MockProvider) Quote(ctx context.Context, req shipment.Request) (quote.RateQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(quote.RateQuote), args.Error(1)
}

func (m *MockProvider) Book(ctx context.Context, req shipment.Request, chosen quote.RateQuote) (ports.BookingConfirmation, error) {
	args := m.Called(ctx, req, chosen)
	return args.Get(0).(ports.BookingConfirmation), args.Error(1)
}

func (m *MockProvider) Track(ctx context.Context, trackingID string) (ports.TrackingSnapshot, error) {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(ports.TrackingSnapshot), args.Error(1)
}

func (m *MockProvider) Cancel(ctx context.Context, trackingID string) (ports.CancellationResult, error) {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(ports.CancellationResult), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func codQuery(t *testing.T) queries.GetRatesQuery {
	t.Helper()

	origin, err := kernel.NewPincode("302001")
	require.NoError(t, err)
	destination, err := kernel.NewPincode("682001")
	require.NoError(t, err)

	req, err := shipment.NewRequest(origin, destination, 1.0,
		shipment.Dimensions{LengthCm: 10, WidthCm: 10, HeightCm: 10},
		shipment.COD, 1500, 1500)
	require.NoError(t, err)

	query, err := queries.NewGetRatesQuery(req)
	require.NoError(t, err)
	return query
}

func serviceable() ports.ServiceabilityResult {
	return ports.ServiceabilityResult{Serviceable: true, CODAvailable: true, PickupAvailable: true}
}

func quoteFor(name string, total float64) quote.RateQuote {
	return quote.RateQuote{
		ProviderName: name,
		Mode:         quote.Surface,
		Breakdown:    quote.Breakdown{Total: total},
		Zone:         zone.RestOfIndia,
	}
}

func TestGetRatesQueryHandler_Handle(t *testing.T) {
	t.Run("should aggregate quotes from all providers sorted by total", func(t *testing.T) {
		cheap := NewMockProvider("xpressbees")
		cheap.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		cheap.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("xpressbees", 179), nil)

		pricey := NewMockProvider("bluedart")
		pricey.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		pricey.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("bluedart", 412), nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{pricey, cheap}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Equal(t, zone.RestOfIndia, response.Zone)
		require.Len(t, response.Quotes, 2)
		assert.Equal(t, "xpressbees", response.Quotes[0].ProviderName)
		assert.Equal(t, "bluedart", response.Quotes[1].ProviderName)
	})

	t.Run("should keep successful quotes when one provider fails", func(t *testing.T) {
		healthy := NewMockProvider("delhivery")
		healthy.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		healthy.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("delhivery", 210), nil)

		broken := NewMockProvider("ecomexpress")
		broken.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		broken.On("Quote", mock.Anything, mock.Anything).
			Return(quote.RateQuote{}, errs.NewProviderAPIError("ecomexpress", 400, errors.New("bad request")))

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{healthy, broken}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		require.Len(t, response.Quotes, 1)
		assert.Equal(t, "delhivery", response.Quotes[0].ProviderName)
	})

	t.Run("should return empty quote list when every provider fails", func(t *testing.T) {
		first := NewMockProvider("delhivery")
		first.On("CheckServiceability", mock.Anything, mock.Anything).
			Return(ports.ServiceabilityResult{}, errs.NewProviderAPIError("delhivery", 500, errors.New("boom")))

		second := NewMockProvider("xpressbees")
		second.On("CheckServiceability", mock.Anything, mock.Anything).
			Return(ports.ServiceabilityResult{}, errs.NewAuthenticationError("xpressbees", errors.New("login failed")))

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{first, second}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		assert.Equal(t, zone.RestOfIndia, response.Zone)
	})

	t.Run("should break total ties by provider name", func(t *testing.T) {
		first := NewMockProvider("delhivery")
		first.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		first.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("delhivery", 200), nil)

		second := NewMockProvider("bluedart")
		second.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		second.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("bluedart", 200), nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{first, second}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		require.Len(t, response.Quotes, 2)
		assert.Equal(t, "bluedart", response.Quotes[0].ProviderName)
		assert.Equal(t, "delhivery", response.Quotes[1].ProviderName)
	})

	t.Run("should skip provider that does not serve the destination", func(t *testing.T) {
		origin, err := kernel.NewPincode("302001")
		require.NoError(t, err)
		destination, err := kernel.NewPincode("682001")
		require.NoError(t, err)

		unserved := NewMockProvider("ecomexpress")
		unserved.On("CheckServiceability", mock.Anything, origin).Return(serviceable(), nil)
		unserved.On("CheckServiceability", mock.Anything, destination).
			Return(ports.ServiceabilityResult{Serviceable: false}, nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{unserved}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		unserved.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
	})

	t.Run("should skip provider without pickup service at the origin", func(t *testing.T) {
		origin, err := kernel.NewPincode("302001")
		require.NoError(t, err)

		noPickup := NewMockProvider("bluedart")
		noPickup.On("CheckServiceability", mock.Anything, origin).
			Return(ports.ServiceabilityResult{Serviceable: true, CODAvailable: true, PickupAvailable: false}, nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{noPickup}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		noPickup.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
	})

	t.Run("should skip provider without COD support for COD shipment", func(t *testing.T) {
		noCOD := NewMockProvider("bluedart")
		noCOD.On("CheckServiceability", mock.Anything, mock.Anything).
			Return(ports.ServiceabilityResult{Serviceable: true, CODAvailable: false}, nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{noCOD}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		noCOD.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
	})

	t.Run("should assume serviceable when the check errors in optimistic mode", func(t *testing.T) {
		provider := NewMockProvider("delhivery")
		provider.On("CheckServiceability", mock.Anything, mock.Anything).
			Return(ports.ServiceabilityResult{}, errs.NewProviderAPIError("delhivery", 500, errors.New("finder down")))
		provider.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("delhivery", 210), nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{provider}, zone.DefaultTable(), testLogger(),
			queries.WithOptimisticServiceability())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		require.Len(t, response.Quotes, 1)
		assert.Equal(t, "delhivery", response.Quotes[0].ProviderName)
	})

	t.Run("should still exclude unserved pincode in optimistic mode", func(t *testing.T) {
		unserved := NewMockProvider("xpressbees")
		unserved.On("CheckServiceability", mock.Anything, mock.Anything).
			Return(ports.ServiceabilityResult{Serviceable: false}, nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{unserved}, zone.DefaultTable(), testLogger(),
			queries.WithOptimisticServiceability())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		unserved.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything)
	})

	t.Run("should filter quotes by requested service mode", func(t *testing.T) {
		surface := NewMockProvider("xpressbees")
		surface.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		surface.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("xpressbees", 179), nil)

		air := NewMockProvider("bluedart")
		air.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		airQuote := quoteFor("bluedart", 412)
		airQuote.Mode = quote.Air
		air.On("Quote", mock.Anything, mock.Anything).Return(airQuote, nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{surface, air}, zone.DefaultTable(), testLogger())

		query, err := queries.NewGetRatesQueryForMode(codQuery(t).Request(), quote.Air)
		require.NoError(t, err)

		response, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, response.Quotes, 1)
		assert.Equal(t, "bluedart", response.Quotes[0].ProviderName)
	})

	t.Run("should retry a transient quote failure once", func(t *testing.T) {
		flaky := NewMockProvider("delhivery")
		flaky.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		flaky.On("Quote", mock.Anything, mock.Anything).
			Return(quote.RateQuote{}, errs.NewProviderAPIError("delhivery", 503, errors.New("busy"))).Once()
		flaky.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("delhivery", 210), nil).Once()

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{flaky}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		require.Len(t, response.Quotes, 1)
		flaky.AssertExpectations(t)
	})

	t.Run("should not retry a permanent quote failure", func(t *testing.T) {
		rejected := NewMockProvider("delhivery")
		rejected.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		rejected.On("Quote", mock.Anything, mock.Anything).
			Return(quote.RateQuote{}, errs.NewRateNotFoundError("delhivery", "RestOfIndia")).Once()

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{rejected}, zone.DefaultTable(), testLogger())

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		assert.Empty(t, response.Quotes)
		rejected.AssertExpectations(t)
	})

	t.Run("should drop provider that exceeds the quote timeout", func(t *testing.T) {
		fast := NewMockProvider("xpressbees")
		fast.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		fast.On("Quote", mock.Anything, mock.Anything).Return(quoteFor("xpressbees", 179), nil)

		slow := NewMockProvider("bluedart")
		slow.On("CheckServiceability", mock.Anything, mock.Anything).Return(serviceable(), nil)
		slow.On("Quote", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { time.Sleep(200 * time.Millisecond) }).
			Return(quoteFor("bluedart", 412), nil)

		handler := queries.NewGetRatesQueryHandler(
			[]ports.Provider{fast, slow}, zone.DefaultTable(), testLogger(),
			queries.WithQuoteTimeout(50*time.Millisecond))

		response, err := handler.Handle(context.Background(), codQuery(t))

		require.NoError(t, err)
		require.Len(t, response.Quotes, 1)
		assert.Equal(t, "xpressbees", response.Quotes[0].ProviderName)
	})

	t.Run("should give each provider fifteen seconds by default", func(t *testing.T) {
		assert.Equal(t, 15*time.Second, queries.DefaultQuoteTimeout)
	})

	t.Run("should reject a query built without the constructor", func(t *testing.T) {
		handler := queries.NewGetRatesQueryHandler(nil, zone.DefaultTable(), testLogger())

		_, err := handler.Handle(context.Background(), queries.GetRatesQuery{})

		require.Error(t, err)
	})
}
