// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models and never modify aggregates.
package queries

import (
	"errors"

	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/pkg/guard"
)

var ErrGetRatesQueryIsNotConstructed = errors.New(
	"GetRatesQuery must be created via NewGetRatesQuery constructor",
)

// GetRatesQuery asks every registered courier for a price on one shipment.
//
// Example:
//
//	req, err := shipment.NewRequest(origin, destination, 1.5, dims, shipment.COD, 2000, 2000)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment: %w", err)
//	}
//
//	query, _ := NewGetRatesQuery(req)
//	response, err := handler.Handle(ctx, query)
type GetRatesQuery struct {
	request shipment.Request
	mode    quote.ServiceMode

	guard guard.ConstructorGuard
}

// NewGetRatesQuery creates a rate aggregation query for a validated
// shipment request, pricing across all service modes.
func NewGetRatesQuery(request shipment.Request) (GetRatesQuery, error) {
	if err := request.Validate(); err != nil {
		return GetRatesQuery{}, err
	}

	return GetRatesQuery{
		request: request,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetRatesQueryForMode creates a rate aggregation query restricted to
// one service mode; quotes for other modes are dropped from the comparison.
func NewGetRatesQueryForMode(request shipment.Request, mode quote.ServiceMode) (GetRatesQuery, error) {
	if err := mode.Validate(); err != nil {
		return GetRatesQuery{}, err
	}

	query, err := NewGetRatesQuery(request)
	if err != nil {
		return GetRatesQuery{}, err
	}

	query.mode = mode
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRatesQuery) Validate() error {
	return q.guard.Validate(ErrGetRatesQueryIsNotConstructed)
}

// Request returns the shipment being priced.
func (q GetRatesQuery) Request() shipment.Request {
	return q.request
}

// Mode returns the requested service mode filter. UnknownServiceMode
// means no filter: every provider's mode is compared.
func (q GetRatesQuery) Mode() quote.ServiceMode {
	return q.mode
}

// GetRatesQueryResponse is the aggregated rate comparison. Quotes are
// sorted by total ascending, provider name breaking ties. An empty Quotes
// slice means no provider could price the shipment; it is not an error.
type GetRatesQueryResponse struct {
	Zone   zone.Zone
	Quotes []quote.RateQuote
}
