package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/judestp/jtb-frontend/internal/core"
)

// Message keys for failures that never reach the auth service.
const (
	KeyRequiredUsername = "requiredUsername"
	KeyRequiredPassword = "requiredPassword"
	KeyRequiredOTP      = "requiredOtp"
	KeyInvalidFormat    = "invalidFormat"
	KeyPending          = "pending"
	KeyWrongStage       = "wrongStage"
	KeySessionExpired   = "sessionExpired"
)

var (
	// ErrSubmissionPending is returned when the same flow already has a
	// submission in flight.
	ErrSubmissionPending = errors.New("submission already in progress")

	// ErrWrongStage is returned when a form is submitted for a stage the
	// flow is not on.
	ErrWrongStage = errors.New("submission does not match the current stage")

	// ErrSessionExpired is returned when the session created by Login is
	// gone by the time the OTP arrives. The flow is reset to Login.
	ErrSessionExpired = errors.New("sign-in session expired")
)

// ValidationError reports a field that failed the local checks.
type ValidationError struct {
	Field string
	Key   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Key)
}

// RejectedError carries the failure reason returned by the auth service.
type RejectedError struct {
	Reason core.Reason
}

func (e *RejectedError) Error() string {
	return "auth service rejected submission: " + e.Reason.String()
}

// ErrorKey maps an error returned by the Orchestrator to the message key
// the UI translates.
func ErrorKey(err error) string {
	var verr *ValidationError
	var rerr *RejectedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Key
	case errors.As(err, &rerr):
		return rerr.Reason.String()
	case errors.Is(err, ErrSubmissionPending):
		return KeyPending
	case errors.Is(err, ErrWrongStage):
		return KeyWrongStage
	case errors.Is(err, ErrSessionExpired):
		return KeySessionExpired
	default:
		return core.ReasonServerError.String()
	}
}

// IsCancelled reports whether err only means the caller went away.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
