package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"

	retry "github.com/appleboy/go-httpretry"
	"go.uber.org/zap"
)

// Backend endpoints, relative to AUTH_API_URL.
const (
	loginEndpoint = "/login"
	otpEndpoint   = "/otp/verify"
	resetEndpoint = "/password/reset"
)

// Compile-time interface check.
var _ core.AuthService = (*HTTPService)(nil)

// HTTPService forwards sign-in calls to a real authentication backend.
// Transport failures and malformed answers become serverError results.
type HTTPService struct {
	baseURL     string
	retryClient *retry.Client
	metrics     core.Recorder
}

// NewHTTPService creates the backend-backed service.
func NewHTTPService(baseURL string, retryClient *retry.Client, m core.Recorder) *HTTPService {
	return &HTTPService{
		baseURL:     strings.TrimRight(baseURL, "/"),
		retryClient: retryClient,
		metrics:     m,
	}
}

// APILoginRequest is the request payload for the login endpoint
type APILoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// APIOTPRequest is the request payload for the OTP endpoint
type APIOTPRequest struct {
	Code string `json:"code"`
}

// APIResetRequest is the request payload for the password reset endpoint
type APIResetRequest struct {
	Username string `json:"username"`
}

// APIResponse is the answer shape shared by every endpoint.
// User and Token are only present on a successful login.
type APIResponse struct {
	Success bool               `json:"success"`
	Reason  string             `json:"reason,omitempty"`
	User    *models.PublicUser `json:"user,omitempty"`
	Token   string             `json:"token,omitempty"`
	Message string             `json:"message,omitempty"`
}

// doPostRequest sends reqBody as JSON and decodes the answer.
// A 4xx answer with a JSON body is still decoded; the caller reads Reason.
func (s *HTTPService) doPostRequest(
	ctx context.Context,
	operation, endpoint string,
	reqBody any,
) (*APIResponse, error) {
	start := time.Now()
	success := false
	defer func() {
		s.metrics.RecordExternalAPICall(operation, success, time.Since(start))
	}()

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.retryClient.Post(
		ctx,
		s.baseURL+endpoint,
		retry.WithBody("application/json", bytes.NewBuffer(jsonData)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrBackendResponse)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return nil, fmt.Errorf(
			"%w: HTTP %d - %s",
			ErrBackendResponse,
			resp.StatusCode,
			bodyPreview,
		)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrBackendResponse, resp.StatusCode, apiResp.Message)
	}
	if resp.StatusCode >= 300 && apiResp.Success {
		return nil, fmt.Errorf("%w: HTTP %d with success=true", ErrBackendResponse, resp.StatusCode)
	}

	success = true
	return &apiResp, nil
}

// knownReason keeps backend reasons inside the closed set the UI can
// translate. Anything else is a server error.
func knownReason(reason string, allowed ...core.Reason) core.Reason {
	for _, r := range allowed {
		if reason == string(r) {
			return r
		}
	}
	return core.ReasonServerError
}

// Login forwards the credentials to the backend
func (s *HTTPService) Login(ctx context.Context, identifier, secret string) *core.LoginResult {
	apiResp, err := s.doPostRequest(ctx, "login", loginEndpoint, APILoginRequest{
		Username: identifier,
		Password: secret,
	})
	if err != nil {
		logger.L().Warn("auth backend login failed", zap.Error(err))
		return loginFailure(core.ReasonServerError)
	}

	if !apiResp.Success {
		return loginFailure(knownReason(apiResp.Reason, core.ReasonInvalidCredentials))
	}

	if apiResp.Token == "" || apiResp.User == nil || apiResp.User.ID == "" {
		logger.L().Warn("auth backend returned success without token or user")
		return loginFailure(core.ReasonServerError)
	}

	return &core.LoginResult{
		Success: true,
		User:    apiResp.User,
		Token:   apiResp.Token,
	}
}

// VerifyOTP forwards the one-time password to the backend
func (s *HTTPService) VerifyOTP(ctx context.Context, code string) *core.OTPResult {
	apiResp, err := s.doPostRequest(ctx, "otp", otpEndpoint, APIOTPRequest{Code: code})
	if err != nil {
		logger.L().Warn("auth backend otp check failed", zap.Error(err))
		return &core.OTPResult{Reason: core.ReasonServerError}
	}

	if !apiResp.Success {
		return &core.OTPResult{Reason: knownReason(apiResp.Reason, core.ReasonInvalidOrExpiredOTP)}
	}
	return &core.OTPResult{Success: true}
}

// RequestPasswordReset asks the backend to send reset instructions
func (s *HTTPService) RequestPasswordReset(ctx context.Context, identifier string) *core.ResetResult {
	apiResp, err := s.doPostRequest(ctx, "password_reset", resetEndpoint, APIResetRequest{
		Username: identifier,
	})
	if err != nil {
		logger.L().Warn("auth backend password reset failed", zap.Error(err))
		return &core.ResetResult{Reason: core.ReasonServerError}
	}

	if !apiResp.Success {
		return &core.ResetResult{Reason: knownReason(apiResp.Reason, core.ReasonUserNotFound)}
	}
	return &core.ResetResult{Success: true, Reason: core.ReasonResetSent}
}

// Name returns provider name for logging
func (s *HTTPService) Name() string {
	return "http_api"
}
