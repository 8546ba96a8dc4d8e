package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AuthMode:          AuthModeMock,
		SessionStore:      SessionStoreMemory,
		RateLimitStore:    RateLimitStoreMemory,
		DefaultLanguage:   LanguageEnglish,
		OTPLength:         6,
		PasswordMinLength: 8,
		MockLatency:       800 * time.Millisecond,
		SessionTTL:        24 * time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name: "valid http api mode",
			mutate: func(c *Config) {
				c.AuthMode = AuthModeHTTPAPI
				c.AuthAPIURL = "http://backend.local/auth"
			},
		},
		{
			name:        "http api mode without url",
			mutate:      func(c *Config) { c.AuthMode = AuthModeHTTPAPI },
			expectError: true,
			errorMsg:    "AUTH_API_URL is required",
		},
		{
			name:        "invalid auth mode",
			mutate:      func(c *Config) { c.AuthMode = "ldap" },
			expectError: true,
			errorMsg:    `invalid AUTH_MODE value: "ldap"`,
		},
		{
			name:        "invalid session store",
			mutate:      func(c *Config) { c.SessionStore = "memcache" },
			expectError: true,
			errorMsg:    `invalid SESSION_STORE value: "memcache"`,
		},
		{
			name:        "invalid rate limit store - uppercase",
			mutate:      func(c *Config) { c.RateLimitStore = "MEMORY" },
			expectError: true,
			errorMsg:    `invalid RATE_LIMIT_STORE value: "MEMORY"`,
		},
		{
			name:        "unsupported language",
			mutate:      func(c *Config) { c.DefaultLanguage = "fr" },
			expectError: true,
			errorMsg:    `invalid DEFAULT_LANGUAGE value: "fr"`,
		},
		{
			name:        "otp length too short",
			mutate:      func(c *Config) { c.OTPLength = 2 },
			expectError: true,
			errorMsg:    "invalid OTP_LENGTH value: 2",
		},
		{
			name:        "negative latency",
			mutate:      func(c *Config) { c.MockLatency = -time.Second },
			expectError: true,
			errorMsg:    "invalid MOCK_LATENCY value",
		},
		{
			name:        "zero session ttl",
			mutate:      func(c *Config) { c.SessionTTL = 0 },
			expectError: true,
			errorMsg:    "SESSION_TTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, AuthModeMock, cfg.AuthMode)
	assert.Equal(t, 800*time.Millisecond, cfg.MockLatency)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, 8, cfg.PasswordMinLength)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, LanguageEnglish, cfg.DefaultLanguage)
	assert.False(t, cfg.IsProduction)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MOCK_LATENCY", "50ms")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOGIN_RATE_LIMIT", "12")
	t.Setenv("ENABLE_RATE_LIMIT", "0")
	t.Setenv("DEFAULT_LANGUAGE", "ja")

	cfg := Load()

	assert.Equal(t, 50*time.Millisecond, cfg.MockLatency)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 12, cfg.LoginRateLimit)
	assert.False(t, cfg.EnableRateLimit)
	assert.Equal(t, LanguageJapanese, cfg.DefaultLanguage)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MOCK_LATENCY", "soon")
	t.Setenv("OTP_LENGTH", "six")

	cfg := Load()

	assert.Equal(t, 800*time.Millisecond, cfg.MockLatency)
	assert.Equal(t, 6, cfg.OTPLength)
}

func TestConfig_UsesRedis(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.UsesRedis())

	cfg.SessionStore = SessionStoreRedis
	assert.True(t, cfg.UsesRedis())

	cfg.SessionStore = SessionStoreMemory
	cfg.RateLimitStore = RateLimitStoreRedis
	assert.False(t, cfg.UsesRedis(), "redis rate limit store is ignored while rate limiting is off")

	cfg.EnableRateLimit = true
	assert.True(t, cfg.UsesRedis())
}
