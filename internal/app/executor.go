package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
)

// Loads run as Validate → Perform → Verify → Archive. State is only written
// in Archive, after the upstream reply has been checked, so a failed or
// malformed reply never touches what the board already holds.

// ExecutionStep names the step an operation failed in.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Operation holds the step functions. Nil steps are skipped.
type Operation[I, P, V any] struct {
	// Name identifies this operation in logs.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
}

// Execute runs op against input and returns the verified value.
func Execute[I, P, V any](ctx context.Context, op Operation[I, P, V], input I) (V, error) {
	var zero V

	logger := logging.FromContext(ctx).With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		if err := op.Validate(ctx, input); err != nil {
			logger.WarnContext(ctx, "validation failed", slog.Any("error", err))
			return zero, stepError(StepValidate, "input validation failed", err)
		}
	}

	var performed P

	if op.Perform != nil {
		var err error

		performed, err = op.Perform(ctx, input)
		if err != nil {
			logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))
			return zero, stepError(StepPerform, "operation failed", err)
		}
	}

	var verified V

	if op.Verify != nil {
		var err error

		verified, err = op.Verify(ctx, input, performed)
		if err != nil {
			logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))
			return zero, stepError(StepVerify, "verification failed", err)
		}
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, input, verified); err != nil {
			logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))
			return zero, stepError(StepArchive, "state update failed", err)
		}
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return verified, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
