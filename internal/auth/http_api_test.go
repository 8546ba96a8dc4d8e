package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judestp/jtb-frontend/internal/client"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestHTTPService builds a service with retries disabled for
// predictable test behavior
func createTestHTTPService(url string) *HTTPService {
	retryClient, err := client.NewRetryClient(client.Options{
		AuthMode:   "none",
		AuthHeader: "X-API-Secret",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create test retry client: %v", err))
	}
	return NewHTTPService(url, retryClient, metrics.NewNoopMetrics())
}

func TestHTTPService_Login_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req APILoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@gmail.com", req.Username)
		assert.Equal(t, "123", req.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "backend-token",
			"user": map[string]any{
				"id":        "1",
				"username":  "admin@gmail.com",
				"firstName": "Admin",
				"role":      "admin",
			},
		})
	}))
	defer server.Close()

	svc := createTestHTTPService(server.URL + "/api/")
	result := svc.Login(context.Background(), "admin@gmail.com", "123")

	require.True(t, result.Success)
	assert.Equal(t, "backend-token", result.Token)
	assert.Equal(t, "1", result.User.ID)
	assert.True(t, result.User.IsAdmin())
}

func TestHTTPService_Login_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"reason":"invalidCredentials"}`))
	}))
	defer server.Close()

	result := createTestHTTPService(server.URL).Login(context.Background(), "unknownuser", "x")
	assert.False(t, result.Success)
	assert.Equal(t, core.ReasonInvalidCredentials, result.Reason)
}

func TestHTTPService_Login_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		closeIt bool
	}{
		{"5xx", http.StatusInternalServerError, `{"success":false,"message":"boom"}`, false},
		{"non json", http.StatusOK, `<html>oops</html>`, false},
		{"success without token", http.StatusOK, `{"success":true,"user":{"id":"1"}}`, false},
		{"success without user", http.StatusOK, `{"success":true,"token":"t"}`, false},
		{"unknown reason", http.StatusOK, `{"success":false,"reason":"accountLocked"}`, false},
		{"success with error status", http.StatusForbidden, `{"success":true,"token":"t"}`, false},
		{"connection refused", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			url := server.URL
			if tt.closeIt {
				server.Close()
			} else {
				defer server.Close()
			}

			result := createTestHTTPService(url).Login(context.Background(), "admin@gmail.com", "123")
			assert.False(t, result.Success)
			assert.Equal(t, core.ReasonServerError, result.Reason)
			assert.Empty(t, result.Token)
		})
	}
}

func TestHTTPService_VerifyOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/otp/verify", r.URL.Path)
		var req APIOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Code == "123456" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"reason":"invalidOrExpiredOtp"}`))
	}))
	defer server.Close()

	svc := createTestHTTPService(server.URL)

	assert.True(t, svc.VerifyOTP(context.Background(), "123456").Success)

	result := svc.VerifyOTP(context.Background(), "000000")
	assert.False(t, result.Success)
	assert.Equal(t, core.ReasonInvalidOrExpiredOTP, result.Reason)
}

func TestHTTPService_RequestPasswordReset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/password/reset", r.URL.Path)
		var req APIResetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Username == "admin@gmail.com" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"reason":"userNotFound"}`))
	}))
	defer server.Close()

	svc := createTestHTTPService(server.URL)

	result := svc.RequestPasswordReset(context.Background(), "admin@gmail.com")
	assert.True(t, result.Success)
	assert.Equal(t, core.ReasonResetSent, result.Reason)

	result = svc.RequestPasswordReset(context.Background(), "nobody")
	assert.False(t, result.Success)
	assert.Equal(t, core.ReasonUserNotFound, result.Reason)
}

func TestHTTPService_Name(t *testing.T) {
	assert.Equal(t, "http_api", createTestHTTPService("http://localhost").Name())
}
