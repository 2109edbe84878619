// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultSecretKey      = "dev-secret-change-me"
	defaultPaymentTimeout = 25
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Payment     PaymentConfig
	Storage     StorageConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	I18n        I18nConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Driver       string // postgres | sqlite
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in minutes
}

type PaymentConfig struct {
	Provider             string // mercadopago | stripe
	MPAccessToken        string
	MPPublicKey          string
	MPAPIURL             string
	BaseURL              string
	Currency             string
	StatementDescriptor  string
	FallbackPayerEmail   string
	Timeout              int // in seconds
	StripeSecretKey      string
	StripePublishableKey string
}

type StorageConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
	LocalDir        string
	MaxImageSize    int64 // in bytes
}

type RateLimitConfig struct {
	GeneralPerSecond int
	GeneralBurst     int
	AuthPerMinute    int
	AuthBurst        int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type I18nConfig struct {
	DefaultLocale string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	rawBaseURL := getEnv("MP_BASE_URL", os.Getenv("BASE_URL"))
	baseURL := SanitizeBaseURL(rawBaseURL)
	if rawBaseURL != "" && baseURL == "" {
		logrus.WithField("base_url", rawBaseURL).Warn("Ignoring base URL without http(s) scheme; request headers will be used")
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8001"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "soutech_shop"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "soutech.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("SECRET_KEY", defaultSecretKey),
			AccessTokenTTL: getEnvAsInt("ACCESS_EXPIRE_MIN", 60),
		},
		Payment: PaymentConfig{
			Provider:             strings.ToLower(getEnv("PAYMENT_PROVIDER", "mercadopago")),
			MPAccessToken:        getEnv("MP_ACCESS_TOKEN", ""),
			MPPublicKey:          getEnv("MP_PUBLIC_KEY", ""),
			MPAPIURL:             strings.TrimRight(getEnv("MP_API_URL", "https://api.mercadopago.com"), "/"),
			BaseURL:              baseURL,
			Currency:             getEnv("PAYMENT_CURRENCY", "BRL"),
			StatementDescriptor:  getEnv("PAYMENT_STATEMENT_DESCRIPTOR", "SOUTECH"),
			FallbackPayerEmail:   getEnv("PAYMENT_FALLBACK_EMAIL", "compras@soutechautomacao.com"),
			Timeout:              getEnvAsInt("PAYMENT_TIMEOUT", defaultPaymentTimeout),
			StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		},
		Storage: StorageConfig{
			Region:          getEnv("AWS_REGION", "sa-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "soutech-shop-assets"),
			CloudFrontURL:   strings.TrimRight(getEnv("AWS_CLOUDFRONT_URL", ""), "/"),
			LocalDir:        getEnv("UPLOADS_DIR", "./uploads"),
			MaxImageSize:    int64(getEnvAsInt("MAX_IMAGE_SIZE_MB", 10)) * 1024 * 1024,
		},
		RateLimit: RateLimitConfig{
			GeneralPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 10),
			GeneralBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
			AuthPerMinute:    getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 10),
			AuthBurst:        getEnvAsInt("AUTH_RATE_LIMIT_BURST", 5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "pt_BR"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == defaultSecretKey && c.Environment == "production" {
		return fmt.Errorf("SECRET_KEY must be changed in production")
	}

	if c.Database.Driver == "postgres" && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Payment.Provider != "mercadopago" && c.Payment.Provider != "stripe" {
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", c.Payment.Provider)
	}

	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_EXPIRE_MIN must be positive")
	}

	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must be positive")
	}

	return nil
}

// PaymentConfigured reports whether the selected provider has credentials.
func (p *PaymentConfig) PaymentConfigured() bool {
	if p.Provider == "stripe" {
		return p.StripeSecretKey != ""
	}
	return p.MPAccessToken != ""
}

// RequestTimeout bounds every outbound provider call. A non-positive value
// falls back to the default so a client never waits indefinitely.
func (p *PaymentConfig) RequestTimeout() time.Duration {
	if p.Timeout <= 0 {
		return defaultPaymentTimeout * time.Second
	}
	return time.Duration(p.Timeout) * time.Second
}

// SanitizeBaseURL trims the trailing slash and discards values that are not
// absolute http(s) URLs, leaving the request-derived fallback in charge.
func SanitizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return ""
	}
	return strings.TrimRight(raw, "/")
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
