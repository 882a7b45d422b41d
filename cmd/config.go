package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Rate aggregation tuning.
	QuoteTimeout             string
	OptimisticServiceability string

	// Courier provider accounts.
	DelhiveryBaseURL        string
	DelhiveryAPIToken       string
	DelhiveryPickupLocation string

	XpressbeesBaseURL  string
	XpressbeesEmail    string
	XpressbeesPassword string

	EcomExpressBaseURL  string
	EcomExpressUsername string
	EcomExpressPassword string

	BlueDartBaseURL    string
	BlueDartLicenceKey string
	BlueDartLoginID    string
}
