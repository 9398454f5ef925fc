package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SMS provider names accepted in SMS_PROVIDER.
const (
	SMSProviderSemaphore = "semaphore"
	SMSProviderTwilio    = "twilio"
)

// Config holds the application configuration
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	ReportCacheTTL time.Duration `env:"REPORT_CACHE_TTL" envDefault:"5m"`

	// Dispatch event webhook
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Auth
	APIKeys        []string `env:"API_KEYS"`
	JWTSecret      string   `env:"JWT_SECRET"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	SMS SMSConfig

	// Matching
	AliasFile           string  `env:"ALIAS_FILE"`
	MatchFuzzyThreshold float64 `env:"MATCH_FUZZY_THRESHOLD" envDefault:"0"`
}

// SMSConfig groups the settings of every supported SMS provider.
type SMSConfig struct {
	Provider       string        `env:"SMS_PROVIDER" envDefault:"semaphore"`
	Timeout        time.Duration `env:"SMS_TIMEOUT" envDefault:"10s"`
	PortalLoginURL string        `env:"PORTAL_LOGIN_URL"`

	SemaphoreAPIKey     string `env:"SEMAPHORE_API_KEY"`
	SemaphoreAPIURL     string `env:"SEMAPHORE_API_URL"`
	SemaphoreSenderName string `env:"SEMAPHORE_SENDER_NAME"`

	TwilioAccountSID          string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken           string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber          string `env:"TWILIO_FROM_NUMBER"`
	TwilioMessagingServiceSID string `env:"TWILIO_MESSAGING_SERVICE_SID"`
	TwilioAPIURL              string `env:"TWILIO_API_URL"`

	GenericAPIURL string `env:"SMS_API_URL"`
	GenericAPIKey string `env:"SMS_API_KEY"`
}

// LoadConfig loads configuration from the environment, falling back to a .env file
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "file://migrations"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		ReportCacheTTL:      getEnvAsDuration("REPORT_CACHE_TTL", 5*time.Minute),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		WebhookSecret:       os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:      getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:   getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:    getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		APIKeys:             getEnvAsList("API_KEYS"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		AllowedOrigins:      getEnvAsList("ALLOWED_ORIGINS"),
		AliasFile:           os.Getenv("ALIAS_FILE"),
		MatchFuzzyThreshold: getEnvAsFloat("MATCH_FUZZY_THRESHOLD", 0),
		SMS: SMSConfig{
			Provider:                  strings.ToLower(strings.TrimSpace(getEnv("SMS_PROVIDER", SMSProviderSemaphore))),
			Timeout:                   getEnvAsDuration("SMS_TIMEOUT", 10*time.Second),
			PortalLoginURL:            os.Getenv("PORTAL_LOGIN_URL"),
			SemaphoreAPIKey:           os.Getenv("SEMAPHORE_API_KEY"),
			SemaphoreAPIURL:           getEnv("SEMAPHORE_API_URL", "https://api.semaphore.co/api/v4/messages"),
			SemaphoreSenderName:       os.Getenv("SEMAPHORE_SENDER_NAME"),
			TwilioAccountSID:          os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber:          os.Getenv("TWILIO_FROM_NUMBER"),
			TwilioMessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
			TwilioAPIURL:              getEnv("TWILIO_API_URL", "https://api.twilio.com"),
			GenericAPIURL:             os.Getenv("SMS_API_URL"),
			GenericAPIKey:             os.Getenv("SMS_API_KEY"),
		},
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv returns the environment value or the default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment value as int or the default
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns the environment value as time.Duration or the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping empty items
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
