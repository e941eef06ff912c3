package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ContextError adds operation and path context to an underlying error.
type ContextError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the formatted error string with context.
func (e *ContextError) Error() string {
	if e.Op != "" && e.Path != "" {
		return e.Op + ": " + e.Path + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + e.Err.Error()
	}
	if e.Path != "" {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// ValidationFailedError is returned when at least one changed file
// failed validation. The report has already been written when this
// error surfaces.
type ValidationFailedError struct {
	Total   int
	Failing int
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed for %d of %d files", e.Failing, e.Total)
}

// ExitCode returns the exit code for failed validation (always 1).
func (e *ValidationFailedError) ExitCode() int {
	return 1
}

// NoFilesError is returned when none of the requested paths resolved
// to a file on disk. It carries the same exit code as a validation
// failure.
type NoFilesError struct {
	Missing []string
}

// Error implements the error interface.
func (e *NoFilesError) Error() string {
	return fmt.Sprintf("no files to validate (%d paths missing)", len(e.Missing))
}

// ExitCode returns the exit code when nothing resolved (always 1).
func (e *NoFilesError) ExitCode() int {
	return 1
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// FormatError formats an error with the "ldcheck: " prefix and trailing newline.
func FormatError(err error) string {
	return fmt.Sprintf("ldcheck: %s\n", err.Error())
}

// RunCLI executes the command with the given args, writing output to
// stdout and errors to stderr. It returns the appropriate exit code.
func RunCLI(cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	return RunCLIContext(context.Background(), cmd, args, stdout, stderr)
}

// RunCLIContext is RunCLI with a caller-provided context, enabling
// graceful shutdown via context cancellation (e.g., on SIGINT).
func RunCLIContext(ctx context.Context, cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(stderr, FormatError(err))
		return ExitCodeFromError(err)
	}
	return 0
}
