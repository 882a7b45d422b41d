package queries_test

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, orderID)
	if aggregate, ok := args.Get(0).(*booking.Booking); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingRepository) GetByTrackingID(ctx context.Context, trackingID string) (*booking.Booking, error) {
	args := m.Called(ctx, trackingID)
	if aggregate, ok := args.Get(0).(*booking.Booking); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func trackQuery(t *testing.T, trackingID string) queries.TrackShipmentQuery {
	t.Helper()

	query, err := queries.NewTrackShipmentQuery(trackingID)
	require.NoError(t, err)
	return query
}

func restoredBooking(t *testing.T, providerName, awb string, bookingType booking.Type, status booking.Status, instructions string) *booking.Booking {
	t.Helper()

	aggregate, err := booking.RestoreBooking(
		kernel.NewUUID(), kernel.NewUUID(), providerName,
		awb, "", bookingType, status, "", instructions, time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func TestTrackShipmentQueryHandler_Handle(t *testing.T) {
	t.Run("should fetch live snapshot for automated booking", func(t *testing.T) {
		repo := &MockBookingRepository{}
		repo.On("GetByTrackingID", mock.Anything, "1234567890123").
			Return(restoredBooking(t, "delhivery", "1234567890123",
				booking.ApiAutomated, booking.Confirmed, ""), nil)

		provider := NewMockProvider("delhivery")
		provider.On("Track", mock.Anything, "1234567890123").
			Return(ports.TrackingSnapshot{
				ProviderName: "delhivery",
				TrackingID:   "1234567890123",
				Status:       booking.StatusInTransit,
				Events: []ports.TrackingEvent{{
					Status:      booking.StatusInTransit,
					Description: "left origin hub",
					Location:    "Delhi_Hub",
				}},
				RetrievedAt: time.Now(),
			}, nil)

		handler := queries.NewTrackShipmentQueryHandler(repo,
			map[string]ports.Provider{"delhivery": provider})

		response, err := handler.Handle(context.Background(), trackQuery(t, "1234567890123"))

		require.NoError(t, err)
		assert.Equal(t, "delhivery", response.ProviderName)
		assert.Equal(t, booking.Confirmed, response.BookingStatus)
		assert.Equal(t, booking.StatusInTransit, response.Delivery.Status)
		require.Len(t, response.Delivery.Events, 1)
		provider.AssertExpectations(t)
	})

	t.Run("should synthesize snapshot for manual booking without provider call", func(t *testing.T) {
		instructions := "operations will manifest this shipment manually"

		repo := &MockBookingRepository{}
		repo.On("GetByTrackingID", mock.Anything, "MAN-1A2B3C4D").
			Return(restoredBooking(t, "xpressbees", "MAN-1A2B3C4D",
				booking.ManualRequired, booking.Degraded, instructions), nil)

		provider := NewMockProvider("xpressbees")

		handler := queries.NewTrackShipmentQueryHandler(repo,
			map[string]ports.Provider{"xpressbees": provider})

		response, err := handler.Handle(context.Background(), trackQuery(t, "MAN-1A2B3C4D"))

		require.NoError(t, err)
		assert.Equal(t, booking.ManualRequired, response.BookingType)
		assert.Equal(t, booking.StatusBooked, response.Delivery.Status)
		require.Len(t, response.Delivery.Events, 1)
		assert.Equal(t, instructions, response.Delivery.Events[0].Description)
		provider.AssertNotCalled(t, "Track", mock.Anything, mock.Anything)
	})

	t.Run("should fail for unknown tracking id", func(t *testing.T) {
		repo := &MockBookingRepository{}
		repo.On("GetByTrackingID", mock.Anything, "0000000000000").
			Return(nil, errs.NewObjectNotFoundError("booking", "0000000000000"))

		handler := queries.NewTrackShipmentQueryHandler(repo, map[string]ports.Provider{})

		_, err := handler.Handle(context.Background(), trackQuery(t, "0000000000000"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail when the booking's provider is not registered", func(t *testing.T) {
		repo := &MockBookingRepository{}
		repo.On("GetByTrackingID", mock.Anything, "1234567890123").
			Return(restoredBooking(t, "retired-courier", "1234567890123",
				booking.ApiAutomated, booking.Confirmed, ""), nil)

		handler := queries.NewTrackShipmentQueryHandler(repo, map[string]ports.Provider{})

		_, err := handler.Handle(context.Background(), trackQuery(t, "1234567890123"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject a query built without the constructor", func(t *testing.T) {
		handler := queries.NewTrackShipmentQueryHandler(&MockBookingRepository{}, nil)

		_, err := handler.Handle(context.Background(), queries.TrackShipmentQuery{})

		require.Error(t, err)
	})
}
