// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	AWS         AWSConfig
	Stripe      StripeConfig
	Geocoding   GeocodingConfig
	AI          AIConfig
	Scraper     ScraperConfig
	I18n        I18nConfig
	Web         WebConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // in hours
	RefreshTokenTTL int // in hours
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	// Stripe price IDs per paid tier
	PriceStarter  string
	PriceStandard string
	PricePremium  string
}

// GeocodingConfig points at the French public address API.
type GeocodingConfig struct {
	BaseURL        string
	TimeoutSeconds int
	DelayMillis    int
}

type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	DelayMillis    int
	BatchSize      int
}

// ScraperConfig drives storefront detection and product scraping.
type ScraperConfig struct {
	TimeoutSeconds int
	DelayMillis    int
	PageSize       int
	UserAgent      string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

// WebConfig is used by the web front, which talks to the API over HTTP only.
type WebConfig struct {
	Port       string
	APIBaseURL string
	SiteURL    string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "madeinfrance"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL:  getEnvAsInt("JWT_ACCESS_TTL", 24),   // 24 hours
			RefreshTokenTTL: getEnvAsInt("JWT_REFRESH_TTL", 168), // 7 days
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-west-3"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "madeinfrance-assets"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceStarter:  getEnv("STRIPE_PRICE_STARTER", ""),
			PriceStandard: getEnv("STRIPE_PRICE_STANDARD", ""),
			PricePremium:  getEnv("STRIPE_PRICE_PREMIUM", ""),
		},
		Geocoding: GeocodingConfig{
			BaseURL:        getEnv("GEOCODING_BASE_URL", "https://api-adresse.data.gouv.fr"),
			TimeoutSeconds: getEnvAsInt("GEOCODING_TIMEOUT", 10),
			DelayMillis:    getEnvAsInt("GEOCODING_DELAY_MS", 500),
		},
		AI: AIConfig{
			APIKey:         getEnv("AI_API_KEY", ""),
			BaseURL:        getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
			Model:          getEnv("AI_MODEL", "gpt-4o-mini"),
			TimeoutSeconds: getEnvAsInt("AI_TIMEOUT", 60),
			DelayMillis:    getEnvAsInt("AI_DELAY_MS", 1000),
			BatchSize:      getEnvAsInt("AI_BATCH_SIZE", 25),
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: getEnvAsInt("SCRAPER_TIMEOUT", 20),
			DelayMillis:    getEnvAsInt("SCRAPER_DELAY_MS", 800),
			PageSize:       getEnvAsInt("SCRAPER_PAGE_SIZE", 50),
			UserAgent:      getEnv("SCRAPER_USER_AGENT", "MadeInFranceBot/1.0"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "fr"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		Web: WebConfig{
			Port:       getEnv("WEB_PORT", "3000"),
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
			SiteURL:    getEnv("SITE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
