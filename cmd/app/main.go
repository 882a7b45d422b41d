package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"courierhub/cmd"
	"courierhub/internal/adapters/out/postgres/bookingrepo"
	"courierhub/internal/adapters/out/postgres/ratecardrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	seedRateCards(&app, configs)

	jobManager := app.CreateJobManager()
	if err := jobManager.RateCardReloadJob().Reload(context.Background()); err != nil {
		log.Fatalf("Initial rate card load failed: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		QuoteTimeout:             goDotEnvVariable("QUOTE_TIMEOUT_MS"),
		OptimisticServiceability: goDotEnvVariable("OPTIMISTIC_SERVICEABILITY"),

		DelhiveryBaseURL:        goDotEnvVariable("DELHIVERY_BASE_URL"),
		DelhiveryAPIToken:       goDotEnvVariable("DELHIVERY_API_TOKEN"),
		DelhiveryPickupLocation: goDotEnvVariable("DELHIVERY_PICKUP_LOCATION"),

		XpressbeesBaseURL:  goDotEnvVariable("XPRESSBEES_BASE_URL"),
		XpressbeesEmail:    goDotEnvVariable("XPRESSBEES_EMAIL"),
		XpressbeesPassword: goDotEnvVariable("XPRESSBEES_PASSWORD"),

		EcomExpressBaseURL:  goDotEnvVariable("ECOMEXPRESS_BASE_URL"),
		EcomExpressUsername: goDotEnvVariable("ECOMEXPRESS_USERNAME"),
		EcomExpressPassword: goDotEnvVariable("ECOMEXPRESS_PASSWORD"),

		BlueDartBaseURL:    goDotEnvVariable("BLUEDART_BASE_URL"),
		BlueDartLicenceKey: goDotEnvVariable("BLUEDART_LICENCE_KEY"),
		BlueDartLoginID:    goDotEnvVariable("BLUEDART_LOGIN_ID"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the booking repository relies on.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&bookingrepo.BookingDTO{},
		&ratecardrepo.RateCardDTO{},
		&ratecardrepo.SlabDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func seedRateCards(app *cmd.CompositionRoot, _ cmd.Config) {
	cards, err := cmd.DefaultRateCards()
	if err != nil {
		log.Fatalf("Invalid default rate cards: %v", err)
	}

	if err := app.CreateRateCardRepository().Seed(context.Background(), cards); err != nil {
		log.Fatalf("Failed to seed rate cards: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
