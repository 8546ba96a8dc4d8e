package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/judestp/jtb-frontend/internal/config"
)

var errDefaultSecret = errors.New("default secret must be replaced in production")

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateProductionSecrets(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateProductionSecrets rejects the development defaults when
// ENVIRONMENT=production.
func validateProductionSecrets(cfg *config.Config) error {
	if !cfg.IsProduction {
		return nil
	}
	if cfg.SessionSecret == "" || strings.Contains(cfg.SessionSecret, "change-in-production") {
		return fmt.Errorf("SESSION_SECRET: %w", errDefaultSecret)
	}
	if cfg.JWTSecret == "" || strings.Contains(cfg.JWTSecret, "change-in-production") {
		return fmt.Errorf("JWT_SECRET: %w", errDefaultSecret)
	}
	return nil
}
