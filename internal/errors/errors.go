package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/attendo/internal/logger"
)

// ErrInvariantViolation marks errors that come from broken internal invariants.
// They are bugs or upstream data-model violations, never user input problems.
var ErrInvariantViolation = errors.New("internal invariant violated")

// InvariantViolation is the panic payload used by the pure aggregation and
// derivation code when an input breaks one of its invariants.
type InvariantViolation struct {
	Message string
}

func (v *InvariantViolation) Error() string {
	return "invariant violation: " + v.Message
}

func (v *InvariantViolation) Unwrap() error {
	return ErrInvariantViolation
}

// Invariantf panics with an InvariantViolation.
func Invariantf(format string, args ...interface{}) {
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
}

// Recover converts an InvariantViolation panic into an error stored in *errp.
// Other panics are re-raised. Use as: defer apperrors.Recover(&err).
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	v, ok := r.(*InvariantViolation)
	if !ok {
		panic(r)
	}
	logger.Error("Invariant violation", "error", v.Message)
	*errp = v
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvariantViolation) {
		return fmt.Sprintf("Internal error: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
