package cli

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/mrsgo/internal/app"
)

// Process exit codes.
const (
	ExitFailure    = 1 // loading, building or writing failed
	ExitUsage      = 2 // bad flags, arguments or configuration
	ExitViolations = 3 // the structure is not well-formed
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// Execute runs the mrs command line with args. Command output goes to outW,
// logs and help to errW. Every failure is returned as an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	return toExitError(root.ExecuteContext(ctx))
}

func toExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, app.ErrViolations) {
		return &ExitError{Code: ExitViolations, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
