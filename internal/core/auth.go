package core

import (
	"context"

	"github.com/judestp/jtb-frontend/internal/models"
)

// Reason is the machine-readable cause carried by an auth result. The UI
// maps it to a localized message.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInvalidCredentials  Reason = "invalidCredentials"
	ReasonServerError         Reason = "serverError"
	ReasonInvalidOrExpiredOTP Reason = "invalidOrExpiredOtp"
	ReasonUserNotFound        Reason = "userNotFound"
	ReasonResetSent           Reason = "resetSent"
)

func (r Reason) String() string {
	return string(r)
}

// LoginResult holds the outcome of a credential check.
// User and Token are set only on success; User never carries a secret.
type LoginResult struct {
	Success bool
	User    *models.PublicUser
	Token   string
	Reason  Reason
}

// OTPResult holds the outcome of a one-time password check.
type OTPResult struct {
	Success bool
	Reason  Reason
}

// ResetResult holds the outcome of a password reset request.
type ResetResult struct {
	Success bool
	Reason  Reason
}

// AuthService is the interface that sign-in backends must implement.
// Failures are reported through the result values; implementations never
// return errors or panic across this boundary.
type AuthService interface {
	Login(ctx context.Context, identifier, secret string) *LoginResult
	VerifyOTP(ctx context.Context, code string) *OTPResult
	RequestPasswordReset(ctx context.Context, identifier string) *ResetResult
	Name() string
}
