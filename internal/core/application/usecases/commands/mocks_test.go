package commands_test

import (
	"context"
	"io"
	"log/slog"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/booking"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
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

type MockBookingUoW struct {
	mock.Mock
}

func (m *MockBookingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) BookingRepository() ports.BookingRepository {
	args := m.Called()
	return args.Get(0).(ports.BookingRepository)
}

type MockBookingUoWFactory struct {
	mock.Mock
}

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

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
