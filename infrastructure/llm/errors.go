package llm

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by the completion client and providers.
var (
	// ErrEmptyAPIKey indicates a required credential was not supplied.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	// ErrEmptyResponse indicates the provider returned an empty body.
	ErrEmptyResponse = errors.New("empty response from completion service")
	// ErrNoResponseChoice indicates the response contained no choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// ErrorType categorizes a completion-service failure for standardized
// handling, such as deciding retryability at the caller layer.
type ErrorType int

const (
	// ErrorTypeUnknown is an error of undetermined category.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuthentication is an invalid or rejected credential.
	ErrorTypeAuthentication
	// ErrorTypeRateLimit is an exceeded provider rate limit.
	ErrorTypeRateLimit
	// ErrorTypeBadRequest is a malformed request or invalid parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound is a missing resource, typically the model.
	ErrorTypeNotFound
	// ErrorTypeServerError is a failure on the provider's side.
	ErrorTypeServerError
	// ErrorTypeContentPolicy is a request blocked by content policy.
	ErrorTypeContentPolicy
	// ErrorTypeNetwork is a client-side transport problem.
	ErrorTypeNetwork
	// ErrorTypeTimeout is a request that exceeded its deadline.
	ErrorTypeTimeout
)

// ServiceError is a structured error from the completion service. It
// normalizes provider-specific failures into a common shape carrying
// the upstream status and message, so the pipeline can surface them to
// the caller without provider knowledge. The pipeline itself never
// retries; callers consult IsRetryable when layering their own policy.
type ServiceError struct {
	// Type classifies the error into a standard category.
	Type ErrorType
	// Provider names the completion provider that produced the error.
	Provider string
	// StatusCode holds the upstream HTTP status, when applicable.
	StatusCode int
	// Message is the user-facing message from the provider.
	Message string
	// WrappedError is the original underlying error.
	WrappedError error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	base := fmt.Sprintf("%s error", e.Provider)
	if e.StatusCode > 0 {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if typeStr := e.typeString(); typeStr != "" {
		base += fmt.Sprintf(" [%s]", typeStr)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.WrappedError != nil {
		base += fmt.Sprintf(": %v", e.WrappedError)
	}
	return base
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *ServiceError) Unwrap() error { return e.WrappedError }

// IsRetryable reports whether a caller-layer retry policy may retry a
// request that failed with this error.
func (e *ServiceError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeServerError, ErrorTypeNetwork, ErrorTypeTimeout:
		return true
	default:
		return false
	}
}

func (e *ServiceError) typeString() string {
	switch e.Type {
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeBadRequest:
		return "bad_request"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeServerError:
		return "server_error"
	case ErrorTypeContentPolicy:
		return "content_policy"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return ""
	}
}

// NewServiceError builds a standardized ServiceError from a
// provider-specific failure.
func NewServiceError(provider string, errType ErrorType, statusCode int, message string, wrapped error) *ServiceError {
	return &ServiceError{
		Type:         errType,
		Provider:     provider,
		StatusCode:   statusCode,
		Message:      message,
		WrappedError: wrapped,
	}
}

// ErrorClassifier converts provider-specific failures into
// ServiceError values using HTTP status codes and context state.
type ErrorClassifier struct {
	// Provider names the completion provider this classifier serves.
	Provider string
}

// ClassifyHTTPError classifies an error by its upstream status code.
func (ec *ErrorClassifier) ClassifyHTTPError(statusCode int, message string, err error) *ServiceError {
	var errType ErrorType
	var userMessage string

	switch statusCode {
	case 401, 403:
		errType = ErrorTypeAuthentication
		userMessage = fmt.Sprintf("%s authentication failed", ec.Provider)
	case 429:
		errType = ErrorTypeRateLimit
		userMessage = fmt.Sprintf("%s rate limit exceeded", ec.Provider)
	case 400:
		errType = ErrorTypeBadRequest
		userMessage = message
	case 404:
		errType = ErrorTypeNotFound
		userMessage = message
	case 500, 502, 503, 504:
		errType = ErrorTypeServerError
		userMessage = message
	default:
		if statusCode >= 400 && statusCode < 500 {
			errType = ErrorTypeBadRequest
		} else if statusCode >= 500 {
			errType = ErrorTypeServerError
		} else {
			errType = ErrorTypeUnknown
		}
		userMessage = message
	}

	return NewServiceError(ec.Provider, errType, statusCode, userMessage, err)
}

// ClassifyContextError classifies context cancellation and deadline
// errors. Deadline expiry surfaces as a timeout so callers can
// distinguish an abandoned run from a slow provider.
func (ec *ErrorClassifier) ClassifyContextError(err error) *ServiceError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewServiceError(ec.Provider, ErrorTypeTimeout, 0, "request deadline exceeded", err)
	case errors.Is(err, context.Canceled):
		return NewServiceError(ec.Provider, ErrorTypeNetwork, 0, "request canceled", err)
	default:
		return NewServiceError(ec.Provider, ErrorTypeUnknown, 0, "", err)
	}
}
