package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Authentication mode constants
const (
	AuthModeMock    = "mock"
	AuthModeHTTPAPI = "http_api"
)

// Session store constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Supported UI languages
const (
	LanguageEnglish  = "en"
	LanguageJapanese = "ja"
)

type Config struct {
	// Server settings
	ServerAddr            string
	BaseURL               string
	IsProduction          bool
	ServerShutdownTimeout time.Duration
	LogLevel              string

	// Cookie session settings
	SessionSecret string
	SessionMaxAge int           // seconds
	SessionTTL    time.Duration // server-side session record lifetime

	// Session token settings
	JWTSecret     string
	JWTExpiration time.Duration

	// Authentication
	AuthMode          string        // "mock" or "http_api"
	MockLatency       time.Duration // simulated network delay of the mock service
	OTPLength         int
	PasswordMinLength int

	// Fixture table
	FixturePath    string // optional JSON/YAML file; empty uses the embedded fixture
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	// HTTP API authentication backend
	AuthAPIURL           string
	AuthAPITimeout       time.Duration
	AuthAPIInsecure      bool
	AuthAPIAuthMode      string // "none", "simple", or "hmac"
	AuthAPIAuthSecret    string
	AuthAPIAuthHeader    string
	AuthAPIMaxRetries    int
	AuthAPIRetryDelay    time.Duration
	AuthAPIMaxRetryDelay time.Duration

	// Session repository
	SessionStore     string // "memory" or "redis"
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string
	RateLimitCleanupInterval time.Duration
	LoginRateLimit           int // requests per minute
	OTPRateLimit             int // requests per minute

	// Metrics
	MetricsEnabled bool
	MetricsToken   string

	// Localization
	DefaultLanguage string
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "file::memory:?cache=shared")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:            getEnv("SERVER_ADDR", ":8080"),
		BaseURL:               getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction:          getEnv("ENVIRONMENT", "development") == "production",
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		LogLevel:              getEnv("LOG_LEVEL", "info"),

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 86400),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		JWTSecret:     getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", 24*time.Hour),

		AuthMode:          getEnv("AUTH_MODE", AuthModeMock),
		MockLatency:       getEnvDuration("MOCK_LATENCY", 800*time.Millisecond),
		OTPLength:         getEnvInt("OTP_LENGTH", 6),
		PasswordMinLength: getEnvInt("PASSWORD_MIN_LENGTH", 8),

		FixturePath:    getEnv("FIXTURE_PATH", ""),
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		AuthAPIURL:           getEnv("AUTH_API_URL", ""),
		AuthAPITimeout:       getEnvDuration("AUTH_API_TIMEOUT", 10*time.Second),
		AuthAPIInsecure:      getEnvBool("AUTH_API_INSECURE_SKIP_VERIFY", false),
		AuthAPIAuthMode:      getEnv("AUTH_API_AUTH_MODE", "none"),
		AuthAPIAuthSecret:    getEnv("AUTH_API_AUTH_SECRET", ""),
		AuthAPIAuthHeader:    getEnv("AUTH_API_AUTH_HEADER", "X-API-Secret"),
		AuthAPIMaxRetries:    getEnvInt("AUTH_API_MAX_RETRIES", 3),
		AuthAPIRetryDelay:    getEnvDuration("AUTH_API_RETRY_DELAY", 1*time.Second),
		AuthAPIMaxRetryDelay: getEnvDuration("AUTH_API_MAX_RETRY_DELAY", 10*time.Second),

		SessionStore:     getEnv("SESSION_STORE", SessionStoreMemory),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 5),
		OTPRateLimit:             getEnvInt("OTP_RATE_LIMIT", 10),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", LanguageEnglish),
	}
}

// Validate checks the enumerated settings and the settings each mode requires.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeMock:
	case AuthModeHTTPAPI:
		if c.AuthAPIURL == "" {
			return errors.New("AUTH_API_URL is required when AUTH_MODE=http_api")
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE value: %q (must be %q or %q)",
			c.AuthMode, AuthModeMock, AuthModeHTTPAPI)
	}

	if c.SessionStore != SessionStoreMemory && c.SessionStore != SessionStoreRedis {
		return fmt.Errorf("invalid SESSION_STORE value: %q (must be %q or %q)",
			c.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}

	if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
		return fmt.Errorf("invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
			c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis)
	}

	if c.DefaultLanguage != LanguageEnglish && c.DefaultLanguage != LanguageJapanese {
		return fmt.Errorf("invalid DEFAULT_LANGUAGE value: %q (must be %q or %q)",
			c.DefaultLanguage, LanguageEnglish, LanguageJapanese)
	}

	if c.OTPLength < 4 || c.OTPLength > 10 {
		return fmt.Errorf("invalid OTP_LENGTH value: %d (must be between 4 and 10)", c.OTPLength)
	}

	if c.PasswordMinLength < 1 {
		return fmt.Errorf("invalid PASSWORD_MIN_LENGTH value: %d", c.PasswordMinLength)
	}

	if c.MockLatency < 0 {
		return fmt.Errorf("invalid MOCK_LATENCY value: %s", c.MockLatency)
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	return nil
}

// UsesRedis reports whether any component needs the shared Redis connection.
func (c *Config) UsesRedis() bool {
	return c.SessionStore == SessionStoreRedis ||
		(c.EnableRateLimit && c.RateLimitStore == RateLimitStoreRedis)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}
