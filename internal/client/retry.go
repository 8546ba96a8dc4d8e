package client

import (
	"fmt"
	"time"

	"github.com/judestp/jtb-frontend/internal/config"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// Options describes how to reach the authentication backend.
type Options struct {
	AuthMode           string // "none", "simple", or "hmac"
	AuthSecret         string
	AuthHeader         string
	Timeout            time.Duration
	InsecureSkipVerify bool
	MaxRetries         int
	RetryDelay         time.Duration
	MaxRetryDelay      time.Duration
}

// OptionsFromConfig picks the AUTH_API_* settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AuthMode:           cfg.AuthAPIAuthMode,
		AuthSecret:         cfg.AuthAPIAuthSecret,
		AuthHeader:         cfg.AuthAPIAuthHeader,
		Timeout:            cfg.AuthAPITimeout,
		InsecureSkipVerify: cfg.AuthAPIInsecure,
		MaxRetries:         cfg.AuthAPIMaxRetries,
		RetryDelay:         cfg.AuthAPIRetryDelay,
		MaxRetryDelay:      cfg.AuthAPIMaxRetryDelay,
	}
}

// NewRetryClient creates an HTTP client that signs every request and
// retries transient failures with exponential backoff.
func NewRetryClient(opts Options) (*retry.Client, error) {
	client, err := httpclient.NewAuthClient(
		opts.AuthMode,
		opts.AuthSecret,
		httpclient.WithTimeout(opts.Timeout),
		httpclient.WithHeaderName(opts.AuthHeader),
		httpclient.WithInsecureSkipVerify(opts.InsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(client),
		retry.WithMaxRetries(opts.MaxRetries),
		retry.WithInitialRetryDelay(opts.RetryDelay),
		retry.WithMaxRetryDelay(opts.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
