package bootstrap

import (
	"fmt"

	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/fixture"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/store"

	"go.uber.org/zap"
)

// initializeDatabase loads the fixture and opens the seeded store
func initializeDatabase(cfg *config.Config) (*store.Store, error) {
	data, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN, data)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	source := cfg.FixturePath
	if source == "" {
		source = "embedded"
	}
	logger.L().Info("fixture store ready",
		zap.String("driver", cfg.DatabaseDriver),
		zap.String("fixture", source),
		zap.Int("users", len(data.Users)),
	)
	return db, nil
}
