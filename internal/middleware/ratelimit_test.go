package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judestp/jtb-frontend/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func doRequest(r *gin.Engine, ip, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Forwarded-For", ip)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewMemoryRateLimiter(t *testing.T) {
	limiter, err := NewMemoryRateLimiter(5, "login")
	require.NoError(t, err)

	r := setupTestRouter(t)
	r.POST("/login", limiter, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 5; i++ {
		w := doRequest(r, "192.168.1.100", "text/html")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	w := doRequest(r, "192.168.1.100", "text/html")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many attempts")

	// Another client has its own budget
	w = doRequest(r, "192.168.1.101", "text/html")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_JSONAndMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockRecorder(ctrl)
	m.EXPECT().RecordSubmissionRejected("otp", "tooManyRequests").Times(1)

	limiter, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		StoreType:         RateLimitStoreMemory,
		CleanupInterval:   time.Minute,
		Form:              "otp",
		Metrics:           m,
	})
	require.NoError(t, err)

	r := setupTestRouter(t)
	r.POST("/login", limiter, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1", "application/json").Code)
	w := doRequest(r, "10.0.0.1", "application/json")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestNewRateLimiter_InvalidConfig(t *testing.T) {
	_, err := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 0})
	assert.Error(t, err)

	_, err = NewRateLimiter(RateLimitConfig{RequestsPerMinute: 5, StoreType: RateLimitStoreRedis})
	assert.ErrorIs(t, err, ErrRedisClientRequired)
}

func TestNewRateLimiter_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	_ = client.FlushDB(ctx)

	limiter, err := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 2,
		StoreType:         RateLimitStoreRedis,
		RedisClient:       client,
		Form:              "login",
	})
	require.NoError(t, err)

	r := setupTestRouter(t)
	r.POST("/login", limiter, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, doRequest(r, "10.1.1.1", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "10.1.1.1", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.1.1.1", "").Code)
}
