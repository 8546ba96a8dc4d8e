package metrics

import (
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
)

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordLoginAttempt(result string, duration time.Duration)    {}
func (n *NoopMetrics) RecordOTPVerification(result string, duration time.Duration) {}
func (n *NoopMetrics) RecordStageTransition(from, to string)                       {}
func (n *NoopMetrics) RecordSubmissionRejected(form, reason string)                {}
func (n *NoopMetrics) RecordPasswordResetRequest(result string)                    {}

func (n *NoopMetrics) RecordSessionCreated()                      {}
func (n *NoopMetrics) RecordLogout(sessionDuration time.Duration) {}
func (n *NoopMetrics) RecordSessionExpired(reason string)         {}

func (n *NoopMetrics) RecordExternalAPICall(operation string, success bool, duration time.Duration) {
}

func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}
