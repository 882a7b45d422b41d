package queries

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/core/domain/model/shipment"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/zoobzio/pipz"
)

// DefaultQuoteTimeout bounds one provider's quote call. A slow courier
// drops out of the comparison instead of stalling the whole aggregation.
const DefaultQuoteTimeout = 15 * time.Second

// GetRatesQueryHandler fans a shipment out to every registered provider
// concurrently and aggregates the quotes that come back.
//
// Partial failure is the normal case: a provider that times out, rejects
// the pincode or cannot price the zone is logged and skipped, never
// failing the aggregation. Only when every provider fails does the
// response carry an empty quote list - still a success, so the seller
// sees "no rates available" rather than an error page.
type GetRatesQueryHandler struct {
	providers    []ports.Provider
	zones        zone.Table
	logger       *slog.Logger
	quoteTimeout time.Duration

	// optimisticServiceability assumes a lane is serviceable when the
	// pre-check itself errors, letting the quote proceed. A check that
	// definitively reports the lane unserved still excludes the provider.
	optimisticServiceability bool
}

// GetRatesQueryHandlerOption configures a GetRatesQueryHandler.
type GetRatesQueryHandlerOption func(*GetRatesQueryHandler)

// WithQuoteTimeout overrides the per-provider quote timeout.
func WithQuoteTimeout(timeout time.Duration) GetRatesQueryHandlerOption {
	return func(h *GetRatesQueryHandler) {
		if timeout > 0 {
			h.quoteTimeout = timeout
		}
	}
}

// WithOptimisticServiceability forgives serviceability pre-check errors,
// assuming the lane serviceable when the provider cannot answer.
func WithOptimisticServiceability() GetRatesQueryHandlerOption {
	return func(h *GetRatesQueryHandler) {
		h.optimisticServiceability = true
	}
}

// NewGetRatesQueryHandler creates the rate aggregation handler over the
// given providers.
func NewGetRatesQueryHandler(
	providers []ports.Provider,
	zones zone.Table,
	logger *slog.Logger,
	opts ...GetRatesQueryHandlerOption,
) GetRatesQueryHandler {
	h := GetRatesQueryHandler{
		providers:    providers,
		zones:        zones,
		logger:       logger,
		quoteTimeout: DefaultQuoteTimeout,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle prices the shipment with every provider in parallel and returns
// the quotes sorted by total ascending, provider name breaking ties.
func (h GetRatesQueryHandler) Handle(ctx context.Context, query GetRatesQuery) (GetRatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRatesQueryResponse{}, err
	}

	request := query.Request()

	z, err := h.zones.Resolve(request.Origin(), request.Destination())
	if err != nil {
		return GetRatesQueryResponse{}, err
	}

	// Buffered to provider count so a quote arriving after collection
	// finished never blocks its goroutine.
	results := make(chan quote.RateQuote, len(h.providers))

	var wg sync.WaitGroup
	for _, provider := range h.providers {
		wg.Add(1)
		go func(p ports.Provider) {
			defer wg.Done()

			q, quoteErr := h.quoteOne(ctx, p, request)
			if quoteErr != nil {
				h.logger.WarnContext(ctx, "provider dropped from rate comparison",
					"provider", p.Name(), "error", quoteErr)
				return
			}

			results <- q
		}(provider)
	}

	wg.Wait()
	close(results)

	quotes := make([]quote.RateQuote, 0, len(h.providers))
	for q := range results {
		if mode := query.Mode(); mode != quote.UnknownServiceMode && q.Mode != mode {
			continue
		}
		quotes = append(quotes, q)
	}

	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].Breakdown.Total != quotes[j].Breakdown.Total {
			return quotes[i].Breakdown.Total < quotes[j].Breakdown.Total
		}
		return quotes[i].ProviderName < quotes[j].ProviderName
	})

	return GetRatesQueryResponse{Zone: z, Quotes: quotes}, nil
}

// quoteTask carries one provider's quote attempt through the pipeline.
type quoteTask struct {
	request shipment.Request
	result  quote.RateQuote
}

// quoteOne prices the shipment with a single provider: serviceability
// pre-check, then the timeout-bounded quote call with one retry on
// transient failure.
func (h GetRatesQueryHandler) quoteOne(
	ctx context.Context,
	provider ports.Provider,
	request shipment.Request,
) (quote.RateQuote, error) {
	if err := h.checkServiceability(ctx, provider, request); err != nil {
		// A definitive "not serviceable" answer always excludes the
		// provider; optimistic mode only forgives a failing check.
		if !h.optimisticServiceability || errors.Is(err, errs.ErrNotServiceable) {
			return quote.RateQuote{}, err
		}
		h.logger.WarnContext(ctx, "serviceability check failed, assuming serviceable",
			"provider", provider.Name(), "error", err)
	}

	call := pipz.NewTimeout(
		"quote-"+provider.Name(),
		pipz.Apply("quote", func(ctx context.Context, task quoteTask) (quoteTask, error) {
			result, err := provider.Quote(ctx, task.request)
			if err != nil {
				return task, err
			}
			task.result = result
			return task, nil
		}),
		h.quoteTimeout,
	)

	task, err := call.Process(ctx, quoteTask{request: request})
	if err != nil && errs.IsTransient(err) {
		task, err = call.Process(ctx, quoteTask{request: request})
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return quote.RateQuote{}, errs.NewProviderTimeoutError(provider.Name())
		}
		return quote.RateQuote{}, err
	}

	return task.result, nil
}

func (h GetRatesQueryHandler) checkServiceability(
	ctx context.Context,
	provider ports.Provider,
	request shipment.Request,
) error {
	origin, err := provider.CheckServiceability(ctx, request.Origin())
	if err != nil {
		return err
	}

	if !origin.Serviceable || !origin.PickupAvailable {
		return errs.NewServiceabilityError(provider.Name(), request.Origin().String())
	}

	destination, err := provider.CheckServiceability(ctx, request.Destination())
	if err != nil {
		return err
	}

	if !destination.Serviceable {
		return errs.NewServiceabilityError(provider.Name(), request.Destination().String())
	}

	if request.PaymentMode() == shipment.COD && !destination.CODAvailable {
		return errs.NewServiceabilityError(provider.Name(), request.Destination().String())
	}

	return nil
}
