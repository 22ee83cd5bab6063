package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOperation is wrapped by every OperationError.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConfiguration is wrapped by every ConfigError.
	ErrConfiguration = errors.New("invalid question set")
)

// OperationError reports a transition attempted while its precondition
// does not hold. The engine state is left untouched.
type OperationError struct {
	Op     string
	Reason string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *OperationError) Unwrap() error { return ErrInvalidOperation }

// ConfigError reports a question set that fails its shape invariants.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("question set: %s", e.Problems[0])
	}
	return fmt.Sprintf("question set validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func invalidOp(op, format string, args ...any) error {
	return &OperationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
