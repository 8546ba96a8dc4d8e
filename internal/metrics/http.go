package metrics

import (
	"strconv"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m core.Recorder) gin.HandlerFunc {
	// Type assert to concrete Metrics for Prometheus access
	metrics, ok := m.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // Use route pattern, not actual path
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath converts the actual request path to route pattern
// Returns the route pattern (e.g., "/app/users") or "unknown" if no route matched
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

// RecordLoginAttempt records a credential check and its latency
func (m *Metrics) RecordLoginAttempt(result string, duration time.Duration) {
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
	m.LoginDuration.Observe(duration.Seconds())
}

// RecordOTPVerification records a one-time password check and its latency
func (m *Metrics) RecordOTPVerification(result string, duration time.Duration) {
	m.OTPVerificationsTotal.WithLabelValues(result).Inc()
	m.OTPDuration.Observe(duration.Seconds())
}

// RecordStageTransition records a sign-in stage change
func (m *Metrics) RecordStageTransition(from, to string) {
	m.StageTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSubmissionRejected records a form submission stopped before the service call
func (m *Metrics) RecordSubmissionRejected(form, reason string) {
	m.SubmissionsRejectedTotal.WithLabelValues(form, reason).Inc()
}

// RecordPasswordResetRequest records a password reset request
func (m *Metrics) RecordPasswordResetRequest(result string) {
	m.PasswordResetsTotal.WithLabelValues(result).Inc()
}

// RecordSessionCreated records a session reaching the authenticated stage
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreatedTotal.Inc()
}

// RecordLogout records the logout of an authenticated session
func (m *Metrics) RecordLogout(sessionDuration time.Duration) {
	m.SessionsEndedTotal.WithLabelValues("logout").Inc()
	m.SessionDuration.Observe(sessionDuration.Seconds())
}

// RecordSessionExpired records an authenticated session found expired or
// missing on access
func (m *Metrics) RecordSessionExpired(reason string) {
	m.SessionsEndedTotal.WithLabelValues(reason).Inc()
}

// RecordExternalAPICall records a call to the authentication backend
func (m *Metrics) RecordExternalAPICall(operation string, success bool, duration time.Duration) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.ExternalAPICallsTotal.WithLabelValues(operation, result).Inc()
	m.ExternalAPICallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDatabaseQueryError records a fixture table query error
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}

// String formats the metrics for logging
func (m *Metrics) String() string {
	return "Metrics{SignIn: enabled, Sessions: active, HTTP: enabled}"
}
