package errors

import "errors"

// Exit codes used by the command line
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitCommitsFound is returned by --fail-on-found when out-of-hours commits exist
	ExitCommitsFound = 3
)

// ExitCoder is an error that carries a process exit code
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
type ExitError struct {
	code int
	msg  string
}

func (e *ExitError) Error() string { return e.msg }

// ExitCode returns the process exit code
func (e *ExitError) ExitCode() int { return e.code }

// NewExit creates an ExitError with a message
func NewExit(code int, msg string) error {
	return &ExitError{code: normalizeExit(code), msg: msg}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

func normalizeExit(code int) int {
	if code <= 0 {
		return ExitFailure
	}
	return code
}
