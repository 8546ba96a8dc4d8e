package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Sign-in flow
	RecordLoginAttempt(result string, duration time.Duration)
	RecordOTPVerification(result string, duration time.Duration)
	RecordStageTransition(from, to string)
	RecordSubmissionRejected(form, reason string)
	RecordPasswordResetRequest(result string)

	// Session Management
	RecordSessionCreated()
	RecordLogout(sessionDuration time.Duration)
	RecordSessionExpired(reason string)

	// Backend calls
	RecordExternalAPICall(operation string, success bool, duration time.Duration)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}
