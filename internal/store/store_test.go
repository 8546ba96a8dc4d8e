package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/judestp/jtb-frontend/internal/fixture"
	"github.com/judestp/jtb-frontend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// testFixture is a small fixture with predictable rows
func testFixture() *fixture.Data {
	return &fixture.Data{
		Users: []fixture.UserRecord{
			{ID: "1", Username: "Admin@Gmail.com", Password: "123", FirstName: "Admin", Role: "admin"},
			{ID: "2", Username: "taro@jtb.example", Password: "taro-pass", FirstName: "Taro", LastName: "Kimura"},
		},
		Directory: []models.DirectoryEntry{
			{ID: "1", Name: "Taro Kimura", Company: "JTB Travel", Location: "Tokyo", Section: "Sales", Group: "Group A"},
			{ID: "2", Name: "Hanako Sato", Company: "JTB Travel", Location: "Osaka", Section: "Tours", Group: "Group B"},
			{ID: "3", Name: "Kenji 100%", Company: "Other", Location: "Nagoya", Section: "Sales", Group: "Group_C"},
		},
	}
}

// TestStoreWithSQLite tests store operations with SQLite
func TestStoreWithSQLite(t *testing.T) {
	testBasicOperations(t, "sqlite", nil)
}

// TestStoreWithPostgres tests store operations with PostgreSQL
func TestStoreWithPostgres(t *testing.T) {
	// Skip if running short tests or Docker is not available
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	// Recover from panic if Docker is not available
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Skipping PostgreSQL test: Docker not available (panic: %v)", r)
		}
	}()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("Skipping PostgreSQL test: Docker not available (%v)", err)
		return
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	testBasicOperations(t, "postgres", pgContainer)
}

// createFreshStore creates a new store instance for test isolation
// For SQLite, each call creates a fresh :memory: database
// For PostgreSQL, each call creates a uniquely-named database in the container
func createFreshStore(t *testing.T, driver string, pgContainer *postgres.PostgresContainer) *Store {
	t.Helper()

	var dsn string
	switch driver {
	case "sqlite":
		dsn = ":memory:"
	case "postgres":
		dbName := "test_" + uuid.New().String()[:8]

		ctx := context.Background()

		createDBCmd := fmt.Sprintf("CREATE DATABASE %s", dbName)
		_, _, err := pgContainer.Exec(
			ctx,
			[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", createDBCmd},
		)
		require.NoError(t, err)

		host, err := pgContainer.Host(ctx)
		require.NoError(t, err)
		port, err := pgContainer.MappedPort(ctx, "5432")
		require.NoError(t, err)
		dsn = fmt.Sprintf(
			"host=%s port=%s user=testuser password=testpass dbname=%s sslmode=disable",
			host, port.Port(), dbName,
		)

		t.Cleanup(func() {
			dropDBCmd := fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)
			_, _, _ = pgContainer.Exec(
				context.Background(),
				[]string{"psql", "-U", "testuser", "-d", "testdb", "-c", dropDBCmd},
			)
		})
	default:
		t.Fatalf("unsupported driver: %s", driver)
	}

	store, err := New(driver, dsn, testFixture())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// testBasicOperations runs the read paths against a freshly seeded store
func testBasicOperations(t *testing.T, driver string, pgContainer *postgres.PostgresContainer) {
	t.Run("SeededPasswordsAreHashed", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		user, err := store.GetUserByUsername("admin@gmail.com")
		require.NoError(t, err)
		assert.NotEqual(t, "123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("123")))
		assert.True(t, user.IsAdmin())
	})

	t.Run("DefaultRoleIsUser", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		user, err := store.GetUserByUsername("taro@jtb.example")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("GetUserByUsernameIsCaseInsensitive", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		for _, name := range []string{"admin@gmail.com", "ADMIN@GMAIL.COM", "Admin@Gmail.com"} {
			user, err := store.GetUserByUsername(name)
			require.NoError(t, err, name)
			assert.Equal(t, "1", user.ID)
		}
	})

	t.Run("GetUserByUsernameNotFound", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		_, err := store.GetUserByUsername("unknownuser")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("SeedIsIdempotent", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		require.NoError(t, store.seedData(testFixture()))
		var count int64
		store.db.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})

	t.Run("SearchDirectoryByName", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		entries, page, err := store.SearchDirectory(NewPaginationParams(1, 10, "SATO"), false)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Hanako Sato", entries[0].Name)
		assert.Equal(t, int64(1), page.Total)

		// location is not searched in name scope
		entries, _, err = store.SearchDirectory(NewPaginationParams(1, 10, "tokyo"), false)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("SearchDirectoryAllFields", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		entries, _, err := store.SearchDirectory(NewPaginationParams(1, 10, "tokyo"), true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Taro Kimura", entries[0].Name)

		entries, _, err = store.SearchDirectory(NewPaginationParams(1, 10, "sales"), true)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("SearchDirectoryEscapesWildcards", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		entries, _, err := store.SearchDirectory(NewPaginationParams(1, 10, "100%"), false)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "3", entries[0].ID)

		entries, _, err = store.SearchDirectory(NewPaginationParams(1, 10, "o_p"), true)
		require.NoError(t, err)
		assert.Empty(t, entries, "underscore must match literally")
	})

	t.Run("SearchDirectoryEmptyQueryPaginates", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		entries, page, err := store.SearchDirectory(NewPaginationParams(2, 2, "   "), true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "3", entries[0].ID)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasPrev)
		assert.False(t, page.HasNext)
	})

	t.Run("ListUsersPaginated", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)

		users, page, err := store.ListUsersPaginated(NewPaginationParams(1, 10, "kimura"))
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "taro@jtb.example", users[0].Username)
		assert.Equal(t, int64(1), page.Total)

		users, _, err = store.ListUsersPaginated(NewPaginationParams(1, 10, ""))
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Health", func(t *testing.T) {
		store := createFreshStore(t, driver, pgContainer)
		assert.NoError(t, store.Health())
	})
}

func TestNew_NilFixtureSeedsDefault(t *testing.T) {
	store, err := New("sqlite", ":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	user, err := store.GetUserByUsername("admin@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.FirstName)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "user:pass@tcp(localhost:3306)/dbname", nil)
	assert.Error(t, err)
}

// TestDriverFactory tests the driver factory pattern
func TestGetDialector(t *testing.T) {
	dialector, err := GetDialector(DriverSQLite, ":memory:")
	require.NoError(t, err)
	assert.NotNil(t, dialector)

	dialector, err = GetDialector(DriverPostgres, "host=localhost dbname=jtb")
	require.NoError(t, err)
	assert.NotNil(t, dialector)

	dialector, err = GetDialector("mysql", "user:pass@tcp(localhost:3306)/dbname")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
	assert.Nil(t, dialector)
}

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		size     int
		wantPage int
		wantNext bool
		wantPrev bool
	}{
		{"empty", 0, 1, 10, 1, false, false},
		{"first of three", 25, 1, 10, 1, true, false},
		{"middle", 25, 2, 10, 2, true, true},
		{"clamped past end", 25, 9, 10, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePagination(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, got.CurrentPage)
			assert.Equal(t, tt.wantNext, got.HasNext)
			assert.Equal(t, tt.wantPrev, got.HasPrev)
		})
	}
}

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := NewPaginationParams(0, 0, "q")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)

	p = NewPaginationParams(3, 500, "  taro ")
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, "taro", p.Query)
	assert.Equal(t, 100, p.Offset())
}

// BenchmarkGetUserByUsername benchmarks the login lookup
func BenchmarkGetUserByUsername(b *testing.B) {
	store, err := New("sqlite", ":memory:", testFixture())
	require.NoError(b, err)
	defer store.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.GetUserByUsername("ADMIN@gmail.com")
	}
}
