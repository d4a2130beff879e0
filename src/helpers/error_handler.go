package helpers

import (
	"errors"
	"fmt"

	"token-scanner/src/logger"
)

// ErrRateLimited marks a fetch skipped because the local request budget was spent.
var ErrRateLimited = errors.New("rate limited")

// ErrBodyTooLarge marks an upstream answer over the accepted body size.
var ErrBodyTooLarge = errors.New("body too large")

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ScannerError struct {
	Message string
	Cause   error
}

func (e *ScannerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScannerError) Unwrap() error {
	return e.Cause
}

// Helper to define distinct error types for type assertions if needed
type ConfigurationError struct{ ScannerError }
type NetworkError struct{ ScannerError }
type ValidationError struct{ ScannerError }
type NarrativeError struct{ ScannerError }

// UpstreamError is a provider answer the scanner could not use: a non-success
// status or a payload that does not decode into the expected report.
type UpstreamError struct {
	ScannerError
	Source     string
	StatusCode int
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigurationError(message string, cause error) error {
	return &ConfigurationError{ScannerError{Message: message, Cause: cause}}
}

func NewNetworkError(message string, cause error) error {
	return &NetworkError{ScannerError{Message: message, Cause: cause}}
}

func NewValidationError(message string) error {
	return &ValidationError{ScannerError{Message: message}}
}

func NewNarrativeError(message string, cause error) error {
	return &NarrativeError{ScannerError{Message: message, Cause: cause}}
}

func NewUpstreamError(source string, statusCode int, message string, cause error) error {
	return &UpstreamError{
		ScannerError: ScannerError{Message: message, Cause: cause},
		Source:       source,
		StatusCode:   statusCode,
	}
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var u *UpstreamError
	if errors.As(err, &u) {
		return u.StatusCode
	}
	return 0
}

// Outcome labels why a report is absent, for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNetwork(err):
		return "network_error"
	case errors.Is(err, ErrRateLimited), StatusCode(err) == 429:
		return "rate_limited"
	case errors.Is(err, ErrBodyTooLarge):
		return "too_large"
	case StatusCode(err) != 0:
		return "bad_status"
	default:
		var u *UpstreamError
		if errors.As(err, &u) {
			return "malformed"
		}
		return "error"
	}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

// Handle logs err with its context. Validation problems are caller mistakes and
// are logged as warnings.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	if IsValidation(err) {
		e.Logger.Warning("Rejected input in %s: %v", context, err)
		return
	}
	e.Logger.Error("Error in %s: %v", context, err)
}
