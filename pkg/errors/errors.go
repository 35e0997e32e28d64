package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Configuration errors (2xxx)
	ErrCodeConfigNotFound   ErrorCode = "GOH2001"
	ErrCodeConfigInvalid    ErrorCode = "GOH2002"
	ErrCodeConfigPermission ErrorCode = "GOH2004"

	// Repository errors (3xxx)
	ErrCodeCommitRetrieval ErrorCode = "GOH3001"
	ErrCodeRepoNotFound    ErrorCode = "GOH3002"
	ErrCodeBranchInvalid   ErrorCode = "GOH3003"

	// Parsing errors (5xxx)
	ErrCodeInvalidDate ErrorCode = "GOH5001"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "GOH6001"
	ErrCodeInvalidInput     ErrorCode = "GOH6002"
	ErrCodeRequiredField    ErrorCode = "GOH6003"
	ErrCodeUserInput        ErrorCode = "GOH6004"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "GOH9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // Run cannot continue
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Suggestions []string
}

// Error implements the error interface. Only the message and the cause are
// rendered; codes, context and suggestions are shown by Detail.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Detail renders the error with its code, context and suggestions
func (e *AppError) Detail() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  SeverityError,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	var ae *AppError
	if errors.As(err, &ae) {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Sentinels. Compare with errors.Is; matching is by code.
var (
	// ErrRetrievingCommits is reported whenever the log source fails.
	ErrRetrievingCommits = &AppError{Code: ErrCodeCommitRetrieval, Message: "Error retrieving commits", Severity: SeverityError}

	// ErrInvalidDate is reported when a date string cannot be normalized.
	ErrInvalidDate = &AppError{Code: ErrCodeInvalidDate, Message: "invalid commit date", Severity: SeverityWarning}
)

// RetrievalError creates a commit retrieval failure for a log source
func RetrievalError(source string, cause error) *AppError {
	err := New(ErrCodeCommitRetrieval, ErrRetrievingCommits.Message).
		WithContext("source", source).
		WithSuggestions(
			"Check that the branch exists",
			"Run the command inside a git repository that has commits",
		)
	if cause != nil {
		err.WithContext("cause", cause.Error())
	}
	return err
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'gitoutofhours config init' to write a fresh configuration",
		)
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
