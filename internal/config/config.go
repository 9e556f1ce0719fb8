package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port             string
	Env              string
	LogLevel         string
	EnableTestRoutes bool

	// WhatsApp webhook subscription handshake
	VerifyToken string

	// Zoho CRM OAuth + API
	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoAccountsURL  string
	ZohoBaseURL      string
	ZohoTimeout      time.Duration
	ZohoTokenTTL     time.Duration

	// Summarization service
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAITimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableTestRoutes: getEnvAsBool("ENABLE_TEST_ROUTES", false),

		VerifyToken: getEnv("VERIFY_TOKEN", ""),

		ZohoClientID:     getEnv("ZOHO_CLIENT_ID", ""),
		ZohoClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
		ZohoRefreshToken: getEnv("ZOHO_REFRESH_TOKEN", ""),
		ZohoAccountsURL:  getEnv("ZOHO_ACCOUNTS_URL", ""),
		ZohoBaseURL:      getEnv("ZOHO_BASE_URL", ""),
		ZohoTimeout:      getEnvAsDuration("ZOHO_TIMEOUT", 10*time.Second),
		ZohoTokenTTL:     getEnvAsDuration("ZOHO_TOKEN_TTL", 50*time.Minute),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout: getEnvAsDuration("OPENAI_TIMEOUT", 15*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
