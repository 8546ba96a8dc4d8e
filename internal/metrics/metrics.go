package metrics

import (
	"sync"

	"github.com/judestp/jtb-frontend/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Sign-in Flow Metrics
	LoginAttemptsTotal       *prometheus.CounterVec
	LoginDuration            prometheus.Histogram
	OTPVerificationsTotal    *prometheus.CounterVec
	OTPDuration              prometheus.Histogram
	StageTransitionsTotal    *prometheus.CounterVec
	SubmissionsRejectedTotal *prometheus.CounterVec
	PasswordResetsTotal      *prometheus.CounterVec

	// Session Metrics
	SessionsCreatedTotal prometheus.Counter
	SessionsEndedTotal   *prometheus.CounterVec
	SessionDuration      prometheus.Histogram

	// Backend Metrics
	ExternalAPICallsTotal   *prometheus.CounterVec
	ExternalAPICallDuration *prometheus.HistogramVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		LoginAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_login_attempts_total",
				Help: "Total number of credential checks",
			},
			[]string{"result"}, // success, invalidCredentials, serverError
		),
		LoginDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "console_login_duration_seconds",
				Help:    "Time taken by the auth service to check credentials",
				Buckets: prometheus.DefBuckets,
			},
		),
		OTPVerificationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_otp_verifications_total",
				Help: "Total number of one-time password checks",
			},
			[]string{"result"}, // success, invalidOrExpiredOtp, serverError
		),
		OTPDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "console_otp_duration_seconds",
				Help:    "Time taken by the auth service to check a one-time password",
				Buckets: prometheus.DefBuckets,
			},
		),
		StageTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_stage_transitions_total",
				Help: "Total number of sign-in stage changes",
			},
			[]string{"from", "to"},
		),
		SubmissionsRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_submissions_rejected_total",
				Help: "Total number of form submissions rejected before reaching the auth service",
			},
			[]string{"form", "reason"}, // reason: requiredUsername, invalidFormat, pending, wrongStage
		),
		PasswordResetsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_password_reset_requests_total",
				Help: "Total number of password reset requests",
			},
			[]string{"result"},
		),

		SessionsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_sessions_created_total",
				Help: "Total number of sessions that reached the authenticated stage",
			},
		),
		SessionsEndedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_sessions_ended_total",
				Help: "Total number of sessions ended",
			},
			[]string{"reason"}, // logout, expired, missing
		),
		SessionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "console_session_duration_seconds",
				Help:    "Lifetime of sessions ended by logout",
				Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800, 86400},
			},
		),

		ExternalAPICallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_external_api_calls_total",
				Help: "Total number of calls to the authentication backend",
			},
			[]string{"operation", "result"},
		),
		ExternalAPICallDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_external_api_call_duration_seconds",
				Help:    "Latency of calls to the authentication backend",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of fixture table query errors",
			},
			[]string{"operation"}, // get_user, search_directory, list_users
		),
	}

	return m
}
