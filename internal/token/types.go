package token

import "time"

// Token type constants
const (
	TokenTypeSession = "session"
)

// Result is the outcome of issuing a session token.
type Result struct {
	TokenString string
	TokenType   string
	SessionID   string
	ExpiresAt   time.Time
	Claims      map[string]any
}

// ValidationResult is the outcome of validating a session token.
type ValidationResult struct {
	Valid     bool
	UserID    string
	Username  string
	SessionID string
	ExpiresAt time.Time
	Claims    map[string]any
}
