// Package http exposes the engine over a JSON REST API.
// It coordinates between HTTP handlers and application use cases,
// translating the domain error taxonomy into HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP surface of the rate and booking engine.
type Server struct {
	// Command handlers
	bookShipmentHandler   commands.BookShipmentCommandHandler
	cancelShipmentHandler commands.CancelShipmentCommandHandler

	// Query handlers
	getRatesHandler      queries.GetRatesQueryHandler
	trackShipmentHandler queries.TrackShipmentQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	bookShipmentHandler commands.BookShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	getRatesHandler queries.GetRatesQueryHandler,
	trackShipmentHandler queries.TrackShipmentQueryHandler,
) *Server {
	return &Server{
		bookShipmentHandler:   bookShipmentHandler,
		cancelShipmentHandler: cancelShipmentHandler,
		getRatesHandler:       getRatesHandler,
		trackShipmentHandler:  trackShipmentHandler,
	}
}

// RegisterRoutes attaches the API routes to an echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/rates", s.GetRates)
	api.POST("/book", s.BookShipment)
	api.GET("/track/:trackingId", s.TrackShipment)
	api.POST("/cancel/:trackingId", s.CancelShipment)
}

// GetRates handles POST /api/v1/rates - aggregates quotes across couriers.
func (s *Server) GetRates(ctx echo.Context) error {
	var body RatesRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	request, err := shipmentFromBody(body)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	query, err := ratesQueryFromBody(body, request)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	result, err := s.getRatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to aggregate rates")
	}

	return ctx.JSON(http.StatusOK, ratesResponseFrom(result))
}

// BookShipment handles POST /api/v1/book - books a shipment with one courier.
func (s *Server) BookShipment(ctx echo.Context) error {
	var body BookRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	request, err := shipmentFromBody(body.Shipment)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	chosenQuote, err := rateQuoteFromBody(body.ChosenQuote)
	if err != nil {
		return badRequest(ctx, "Invalid chosen quote: "+err.Error())
	}

	cmd, err := commands.NewBookShipmentCommand(orderID, body.Provider, request, chosenQuote)
	if err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	aggregate, err := s.bookShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to book shipment")
	}

	return ctx.JSON(http.StatusCreated, bookResponseFrom(aggregate))
}

// TrackShipment handles GET /api/v1/track/:trackingId.
func (s *Server) TrackShipment(ctx echo.Context) error {
	query, err := queries.NewTrackShipmentQuery(ctx.Param("trackingId"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking id: "+err.Error())
	}

	result, err := s.trackShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to track shipment")
	}

	return ctx.JSON(http.StatusOK, trackResponseFrom(result))
}

// CancelShipment handles POST /api/v1/cancel/:trackingId.
func (s *Server) CancelShipment(ctx echo.Context) error {
	cmd, err := commands.NewCancelShipmentCommand(ctx.Param("trackingId"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking id: "+err.Error())
	}

	result, err := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to cancel shipment")
	}

	return ctx.JSON(http.StatusOK, cancelResponseFrom(result))
}

// ratesQueryFromBody builds the rate aggregation query, mode-filtered when
// the request names a service mode.
func ratesQueryFromBody(body RatesRequest, request shipment.Request) (queries.GetRatesQuery, error) {
	if body.Mode == "" {
		return queries.NewGetRatesQuery(request)
	}

	mode, err := quote.ParseServiceMode(body.Mode)
	if err != nil {
		return queries.GetRatesQuery{}, err
	}

	return queries.NewGetRatesQueryForMode(request, mode)
}

func shipmentFromBody(body RatesRequest) (shipment.Request, error) {
	origin, err := kernel.NewPincode(body.FromPincode)
	if err != nil {
		return shipment.Request{}, err
	}

	destination, err := kernel.NewPincode(body.ToPincode)
	if err != nil {
		return shipment.Request{}, err
	}

	mode, err := shipment.ParsePaymentMode(body.OrderType)
	if err != nil {
		return shipment.Request{}, err
	}

	return shipment.NewRequest(
		origin,
		destination,
		body.WeightKg,
		shipment.Dimensions{
			LengthCm: body.LengthCm,
			WidthCm:  body.WidthCm,
			HeightCm: body.HeightCm,
		},
		mode,
		body.DeclaredValue,
		body.CODCollectableAmount,
	)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps the domain error taxonomy to HTTP status codes.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrBookingConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrRateNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNotServiceable):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrProviderTimeout), errors.Is(err, errs.ErrProviderAPI),
		errors.Is(err, errs.ErrAuthenticationFailed):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
