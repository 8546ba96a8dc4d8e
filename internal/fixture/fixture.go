package fixture

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/judestp/jtb-frontend/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/mockdb.json
var embedded []byte

var (
	ErrUnsupportedFormat = errors.New("unsupported fixture format")
	ErrInvalidFixture    = errors.New("invalid fixture")
)

// UserRecord is a fixture user with its plaintext password. It only lives
// long enough to be hashed into the store.
type UserRecord struct {
	ID        string    `json:"id"        yaml:"id"`
	Username  string    `json:"username"  yaml:"username"`
	Password  string    `json:"password"  yaml:"password"`
	FirstName string    `json:"firstName" yaml:"firstName"`
	LastName  string    `json:"lastName"  yaml:"lastName"`
	Role      string    `json:"role"      yaml:"role"`
	LastLogin time.Time `json:"lastLogin" yaml:"lastLogin"`
}

// Data is the whole mock database.
type Data struct {
	Users     []UserRecord            `json:"users"     yaml:"users"`
	Directory []models.DirectoryEntry `json:"directory" yaml:"directory"`
}

// Default returns the fixture compiled into the binary.
func Default() (*Data, error) {
	return Parse(embedded, ".json")
}

// Load reads a fixture file. An empty path falls back to Default.
// The format is picked from the extension: .json, .yaml or .yml.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(buf, filepath.Ext(path))
}

// Parse decodes buf according to ext and validates the result.
func Parse(buf []byte, ext string) (*Data, error) {
	var data Data
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(buf, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate rejects records the login lookup could not handle: missing ids,
// empty usernames and usernames that collide case-insensitively.
func (d *Data) Validate() error {
	seen := make(map[string]struct{}, len(d.Users))
	for i, u := range d.Users {
		if u.ID == "" || u.Username == "" {
			return fmt.Errorf("%w: user #%d needs id and username", ErrInvalidFixture, i+1)
		}
		key := strings.ToLower(u.Username)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate username %q", ErrInvalidFixture, u.Username)
		}
		seen[key] = struct{}{}
	}
	for i, e := range d.Directory {
		if e.ID == "" || e.Name == "" {
			return fmt.Errorf("%w: directory row #%d needs id and name", ErrInvalidFixture, i+1)
		}
	}
	return nil
}
