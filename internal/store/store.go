package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/judestp/jtb-frontend/internal/fixture"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the read-only fixture table backing the mock auth service and
// the user search screens.
type Store struct {
	db *gorm.DB
}

// New opens the database, migrates the schema and seeds it from data.
// A nil data seeds the embedded default fixture.
func New(driver, dsn string, data *fixture.Data) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Every pooled connection to :memory: would open its own empty database.
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DirectoryEntry{},
	); err != nil {
		return nil, err
	}

	if data == nil {
		if data, err = fixture.Default(); err != nil {
			return nil, err
		}
	}

	store := &Store{db: db}
	if err := store.seedData(data); err != nil {
		return nil, fmt.Errorf("failed to seed fixture: %w", err)
	}

	return store, nil
}

func (s *Store) seedData(data *fixture.Data) error {
	var userCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		users := make([]models.User, 0, len(data.Users))
		for _, rec := range data.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			role := rec.Role
			if role == "" {
				role = models.RoleUser
			}
			users = append(users, models.User{
				ID:           rec.ID,
				Username:     rec.Username,
				PasswordHash: string(hash),
				FirstName:    rec.FirstName,
				LastName:     rec.LastName,
				Role:         role,
				LastLogin:    rec.LastLogin,
			})
		}
		if len(users) > 0 {
			if err := s.db.Create(&users).Error; err != nil {
				return err
			}
		}
		logger.L().Info("seeded fixture users", zap.Int("count", len(users)))
	}

	var entryCount int64
	if err := s.db.Model(&models.DirectoryEntry{}).Count(&entryCount).Error; err != nil {
		return err
	}
	if entryCount == 0 && len(data.Directory) > 0 {
		entries := append([]models.DirectoryEntry(nil), data.Directory...)
		if err := s.db.Create(&entries).Error; err != nil {
			return err
		}
		logger.L().Info("seeded directory entries", zap.Int("count", len(entries)))
	}

	return nil
}

// User operations

// GetUserByUsername matches the username case-insensitively.
// It returns ErrRecordNotFound when no row matches.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsersPaginated returns users whose username or name contains the
// search keyword.
func (s *Store) ListUsersPaginated(
	params PaginationParams,
) ([]models.User, PaginationResult, error) {
	query := s.db.Model(&models.User{})
	if params.Query != "" {
		pattern := likePattern(params.Query)
		query = query.Where(
			likeClause("username")+" OR "+likeClause("first_name")+" OR "+likeClause("last_name"),
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var users []models.User
	if err := query.Order("username ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&users).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return users, CalculatePagination(total, params.Page, params.PageSize), nil
}

// Directory operations

// SearchDirectory filters the user search table. With allFields false only
// the name column is matched; otherwise every text column is.
func (s *Store) SearchDirectory(
	params PaginationParams,
	allFields bool,
) ([]models.DirectoryEntry, PaginationResult, error) {
	query := s.db.Model(&models.DirectoryEntry{})
	if params.Query != "" {
		pattern := likePattern(params.Query)
		columns := []string{"name"}
		if allFields {
			columns = append(columns, "company", "location", "section", "group_name")
		}
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = likeClause(col)
			args[i] = pattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var entries []models.DirectoryEntry
	if err := query.Order("id ASC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&entries).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	return entries, CalculatePagination(total, params.Page, params.PageSize), nil
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func likeClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// likePattern lowercases q, escapes LIKE wildcards and wraps it in %.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}
