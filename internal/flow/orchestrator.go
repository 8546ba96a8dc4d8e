package flow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/stage"

	"go.uber.org/zap"
)

// Credentials are the values typed into the login form. They are passed
// straight to the auth service and never stored.
type Credentials struct {
	Identifier string
	Secret     string
}

// Flow is one browser's pass through the sign-in stages.
type Flow struct {
	// ID is stable for the browser and keys the pending-submission set.
	ID     string
	Stages stage.Store
	// Token is the auth_token issued by Login; empty before that.
	Token string
}

// Outcome describes a successful submission.
type Outcome struct {
	Stage   stage.Stage
	Session *models.Session
}

// AuthenticatedFunc is called once per flow when it reaches Authenticated.
type AuthenticatedFunc func(ctx context.Context, s *models.Session)

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithSessionTTL sets how long sessions created by Login live
func WithSessionTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.sessionTTL = d
		}
	}
}

// WithOTPLength sets the number of digits a one-time password must have
func WithOTPLength(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.otpFormat = regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, n))
		}
	}
}

// WithOnAuthenticated registers the hand-over to the application shell
func WithOnAuthenticated(fn AuthenticatedFunc) Option {
	return func(o *Orchestrator) {
		o.onAuthenticated = fn
	}
}

// Orchestrator drives a Flow from Login through OTP to Authenticated,
// advancing the stage only when the auth service reports success.
type Orchestrator struct {
	auth            core.AuthService
	sessions        session.Repository
	metrics         core.Recorder
	sessionTTL      time.Duration
	otpFormat       *regexp.Regexp
	onAuthenticated AuthenticatedFunc

	pending sync.Map // flow ID -> struct{}
}

// NewOrchestrator creates an orchestrator with a 24h session lifetime and
// 6-digit one-time passwords unless overridden.
func NewOrchestrator(
	authSvc core.AuthService,
	sessions session.Repository,
	m core.Recorder,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		auth:       authSvc,
		sessions:   sessions,
		metrics:    m,
		sessionTTL: 24 * time.Hour,
		otpFormat:  regexp.MustCompile(`^[0-9]{6}$`),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// acquire marks the flow busy. The returned func releases it.
func (o *Orchestrator) acquire(flowID string) (func(), error) {
	if _, busy := o.pending.LoadOrStore(flowID, struct{}{}); busy {
		return nil, ErrSubmissionPending
	}
	return func() { o.pending.Delete(flowID) }, nil
}

func (o *Orchestrator) reject(form string, err error) error {
	o.metrics.RecordSubmissionRejected(form, ErrorKey(err))
	return err
}

func (o *Orchestrator) advance(f *Flow, to stage.Stage) error {
	from := f.Stages.Get()
	if err := f.Stages.Set(to); err != nil {
		return fmt.Errorf("%w: %v", ErrWrongStage, err)
	}
	o.metrics.RecordStageTransition(from.String(), to.String())
	return nil
}

// Login validates the credentials, asks the auth service and on success
// stores a session and moves the flow to OTP.
func (o *Orchestrator) Login(ctx context.Context, f *Flow, creds Credentials) (*Outcome, error) {
	if f.Stages.Get() != stage.Login {
		return nil, o.reject("login", ErrWrongStage)
	}
	if strings.TrimSpace(creds.Identifier) == "" {
		return nil, o.reject("login", &ValidationError{Field: "identifier", Key: KeyRequiredUsername})
	}
	if creds.Secret == "" {
		return nil, o.reject("login", &ValidationError{Field: "secret", Key: KeyRequiredPassword})
	}

	release, err := o.acquire(f.ID)
	if err != nil {
		return nil, o.reject("login", err)
	}
	defer release()

	start := time.Now()
	result := o.auth.Login(ctx, strings.TrimSpace(creds.Identifier), creds.Secret)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !result.Success {
		o.metrics.RecordLoginAttempt(result.Reason.String(), time.Since(start))
		return nil, &RejectedError{Reason: result.Reason}
	}
	o.metrics.RecordLoginAttempt("success", time.Since(start))

	now := time.Now()
	sess := &models.Session{
		Token:     result.Token,
		User:      *result.User,
		Stage:     stage.OTP,
		CreatedAt: now,
		ExpiresAt: now.Add(o.sessionTTL),
	}
	if err := o.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := o.advance(f, stage.OTP); err != nil {
		_, _ = o.sessions.Clear(ctx, sess.Token)
		return nil, err
	}
	f.Token = sess.Token

	logger.L().Info("credentials accepted",
		zap.String("flow", f.ID),
		zap.String("user", logger.MaskString(sess.User.Username)),
	)

	return &Outcome{Stage: stage.OTP, Session: sess}, nil
}

// VerifyOTP validates the code, asks the auth service and on success marks
// the session authenticated, moves the flow to Authenticated and fires the
// OnAuthenticated callback.
func (o *Orchestrator) VerifyOTP(ctx context.Context, f *Flow, code string) (*Outcome, error) {
	if f.Stages.Get() != stage.OTP {
		return nil, o.reject("otp", ErrWrongStage)
	}
	if code == "" {
		return nil, o.reject("otp", &ValidationError{Field: "otp", Key: KeyRequiredOTP})
	}
	if !o.otpFormat.MatchString(code) {
		return nil, o.reject("otp", &ValidationError{Field: "otp", Key: KeyInvalidFormat})
	}

	release, err := o.acquire(f.ID)
	if err != nil {
		return nil, o.reject("otp", err)
	}
	defer release()

	sess, err := o.sessions.Get(ctx, f.Token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			f.Stages.Reset()
			f.Token = ""
			return nil, o.reject("otp", ErrSessionExpired)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	start := time.Now()
	result := o.auth.VerifyOTP(ctx, code)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !result.Success {
		o.metrics.RecordOTPVerification(result.Reason.String(), time.Since(start))
		return nil, &RejectedError{Reason: result.Reason}
	}
	o.metrics.RecordOTPVerification("success", time.Since(start))

	sess.Stage = stage.Authenticated
	if err := o.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := o.advance(f, stage.Authenticated); err != nil {
		return nil, err
	}
	o.metrics.RecordSessionCreated()

	logger.L().Info("sign-in completed",
		zap.String("flow", f.ID),
		zap.String("user", logger.MaskString(sess.User.Username)),
	)

	if o.onAuthenticated != nil {
		o.onAuthenticated(ctx, sess)
	}

	return &Outcome{Stage: stage.Authenticated, Session: sess}, nil
}

// Reset clears the flow's session and returns it to Login. It returns the
// cleared session, or nil when there was none.
func (o *Orchestrator) Reset(ctx context.Context, f *Flow) (*models.Session, error) {
	from := f.Stages.Get()
	cleared, err := o.sessions.Clear(ctx, f.Token)
	f.Stages.Reset()
	f.Token = ""
	if from != stage.Login {
		o.metrics.RecordStageTransition(from.String(), stage.Login.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	return cleared, nil
}
