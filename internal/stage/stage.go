package stage

import (
	"errors"
	"fmt"
	"sync"
)

// Stage is the sign-in step a browser is currently on.
type Stage string

const (
	Login         Stage = "login"
	OTP           Stage = "otp"
	Authenticated Stage = "authenticated"
)

var (
	// ErrIllegalTransition is returned when Set targets anything other than
	// the next stage.
	ErrIllegalTransition = errors.New("illegal stage transition")

	// ErrUnknownStage is returned by Parse for values outside the enum.
	ErrUnknownStage = errors.New("unknown stage")
)

func (s Stage) String() string {
	return string(s)
}

// Valid reports whether s is one of the three stages.
func (s Stage) Valid() bool {
	switch s {
	case Login, OTP, Authenticated:
		return true
	}
	return false
}

// Next returns the stage that follows s. Authenticated is terminal.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case Login:
		return OTP, true
	case OTP:
		return Authenticated, true
	}
	return s, false
}

// Parse converts a stored value back into a Stage. An empty value is Login.
func Parse(v string) (Stage, error) {
	if v == "" {
		return Login, nil
	}
	s := Stage(v)
	if !s.Valid() {
		return Login, fmt.Errorf("%w: %q", ErrUnknownStage, v)
	}
	return s, nil
}

// CheckTransition validates a move from one stage to another.
// Only a single forward step is allowed.
func CheckTransition(from, to Stage) error {
	next, ok := from.Next()
	if !ok || next != to {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// Store holds the current stage of one sign-in flow.
type Store interface {
	Get() Stage
	// Set advances the stage. It fails with ErrIllegalTransition unless
	// target is the next stage.
	Set(target Stage) error
	// Reset returns the flow to Login.
	Reset()
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	current Stage
}

// NewMemoryStore creates a store starting at Login.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{current: Login}
}

func (m *MemoryStore) Get() Stage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *MemoryStore) Set(target Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := CheckTransition(m.current, target); err != nil {
		return err
	}
	m.current = target
	return nil
}

func (m *MemoryStore) Reset() {
	m.mu.Lock()
	m.current = Login
	m.mu.Unlock()
}
