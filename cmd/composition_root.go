package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/out/couriers"
	"courierhub/internal/adapters/out/couriers/bluedart"
	"courierhub/internal/adapters/out/couriers/delhivery"
	"courierhub/internal/adapters/out/couriers/ecomexpress"
	"courierhub/internal/adapters/out/couriers/xpressbees"
	"courierhub/internal/adapters/out/postgres"
	"courierhub/internal/adapters/out/postgres/ratecardrepo"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/ratecard"
	"courierhub/internal/core/domain/model/zone"
	"courierhub/internal/core/ports"
	"courierhub/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory

	cardStore     *ratecard.Store
	creds         *couriers.CredentialCache
	providers     []ports.Provider
	providerIndex map[string]ports.Provider
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	client := couriers.NewClient(0)
	creds := couriers.NewCredentialCache(couriers.DefaultExpiryBuffer)
	cardStore := ratecard.NewStore()

	providers := []ports.Provider{
		delhivery.NewAdapter(delhivery.Config{
			BaseURL:        config.DelhiveryBaseURL,
			APIToken:       config.DelhiveryAPIToken,
			PickupLocation: config.DelhiveryPickupLocation,
		}, client, creds),
		xpressbees.NewAdapter(xpressbees.Config{
			BaseURL:  config.XpressbeesBaseURL,
			Email:    config.XpressbeesEmail,
			Password: config.XpressbeesPassword,
		}, client, creds, cardStore),
		ecomexpress.NewAdapter(ecomexpress.Config{
			BaseURL:  config.EcomExpressBaseURL,
			Username: config.EcomExpressUsername,
			Password: config.EcomExpressPassword,
		}, client, creds, cardStore),
		bluedart.NewAdapter(bluedart.Config{
			BaseURL:    config.BlueDartBaseURL,
			LicenceKey: config.BlueDartLicenceKey,
			LoginID:    config.BlueDartLoginID,
		}, client, creds),
	}

	providerIndex := make(map[string]ports.Provider, len(providers))
	for _, provider := range providers {
		providerIndex[provider.Name()] = provider
	}

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		logger:        logger,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		cardStore:     cardStore,
		creds:         creds,
		providers:     providers,
		providerIndex: providerIndex,
	}
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookShipmentCommandHandler(f, c.providerIndex, c.logger)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.providerIndex, c.logger)
}

func (c *CompositionRoot) CreateGetRatesQueryHandler() queries.GetRatesQueryHandler {
	opts := make([]queries.GetRatesQueryHandlerOption, 0, 2)

	if millis, err := strconv.Atoi(c.config.QuoteTimeout); err == nil && millis > 0 {
		opts = append(opts, queries.WithQuoteTimeout(time.Duration(millis)*time.Millisecond))
	}
	if optimistic, err := strconv.ParseBool(c.config.OptimisticServiceability); err == nil && optimistic {
		opts = append(opts, queries.WithOptimisticServiceability())
	}

	return queries.NewGetRatesQueryHandler(c.providers, zone.DefaultTable(), c.logger, opts...)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	// Read-only lookup outside any transaction: the repository binds to
	// the main connection when the unit of work has not begun.
	repo := c.uowFactory.Create().BookingRepository()
	return queries.NewTrackShipmentQueryHandler(repo, c.providerIndex)
}

func (c *CompositionRoot) CreateRateCardRepository() *ratecardrepo.GormRateCardRepository {
	return ratecardrepo.NewGormRateCardRepository(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRateCardRepository(), c.cardStore, c.creds, c.providers, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateBookShipmentCommandHandler(),
		c.CreateCancelShipmentCommandHandler(),
		c.CreateGetRatesQueryHandler(),
		c.CreateTrackShipmentQueryHandler(),
	)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}
