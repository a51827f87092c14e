package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment. It is
// built once at startup and injected; nothing reads os.Getenv at call time.
type Config struct {
	Port        string
	PostgresURL string
	JWTSecret   string

	// Merchant registration with the acquiring bank.
	MerchantID      string
	BakongAccountID string
	AcquiringBank   string
	MerchantName    string
	MerchantCity    string

	// Outbound bank/PSP API.
	BankAPIEndpoint string
	BankAPIKey      string

	// Shared secret used to verify inbound webhook signatures.
	WebhookSecret string

	// Public base URL of this service, used to build the callback URL
	// handed to the bank.
	AppBaseURL string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		MerchantID:      os.Getenv("KHQR_MERCHANT_ID"),
		BakongAccountID: os.Getenv("KHQR_BAKONG_ACCOUNT_ID"),
		AcquiringBank:   os.Getenv("KHQR_ACQUIRING_BANK"),
		MerchantName:    getenv("KHQR_MERCHANT_NAME", "KHQR POS"),
		MerchantCity:    getenv("KHQR_MERCHANT_CITY", "Phnom Penh"),

		BankAPIEndpoint: os.Getenv("KHQR_BANK_API_ENDPOINT"),
		BankAPIKey:      os.Getenv("KHQR_BANK_API_KEY"),

		WebhookSecret: os.Getenv("KHQR_WEBHOOK_SECRET"),
		AppBaseURL:    os.Getenv("APP_BASE_URL"),
	}
}

// HasMerchantCredentials reports whether the values required to build a
// payment intent are present. Missing credentials are a deployment fault and
// are surfaced to the caller, never defaulted.
func (c Config) HasMerchantCredentials() bool {
	return c.MerchantID != "" && c.BakongAccountID != "" && c.AcquiringBank != ""
}
