package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified navkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status the deep-link endpoint answers with.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// RouteNotHandled creates an AppError for a route identifier no handler owns.
func RouteNotHandled(identifier string) *AppError {
	return &AppError{
		Code: ErrCodeRouteNotHandled, Message: fmt.Sprintf("No handler is registered for route %q.", identifier),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"identifier": identifier},
	}
}

// InvalidRoute creates an AppError for a serialized route that failed to decode.
func InvalidRoute(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidRoute, Message: fmt.Sprintf("Invalid route: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
}

// UnknownScope creates an AppError for a scope that was never registered.
func UnknownScope(scope string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownScope, Message: fmt.Sprintf("Scope %q is not registered.", scope),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"scope": scope},
	}
}

// ScopeNotEntered creates an AppError for leaving a scope that is not active.
func ScopeNotEntered(scope string) *AppError {
	return &AppError{
		Code: ErrCodeScopeNotEntered, Message: fmt.Sprintf("Scope %q was left without being entered.", scope),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"scope": scope},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ServiceUnavailable creates an AppError for a collaborator that is not ready.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is not available yet.", service),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"service": service},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Wrap converts any error into an AppError, keeping AppErrors found in the
// chain as they are.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
