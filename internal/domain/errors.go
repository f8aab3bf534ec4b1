package domain

import (
	"errors"
	"fmt"
)

// AuthErrorCode discriminates webhook authentication failures. All of them
// are terminal for the request: the caller must reject before any state
// mutation happens.
type AuthErrorCode string

const (
	AuthErrMissingParameters AuthErrorCode = "missing_parameters"
	AuthErrStaleTimestamp    AuthErrorCode = "stale_timestamp"
	AuthErrKeyNotConfigured  AuthErrorCode = "key_not_configured"
	AuthErrInvalidSignature  AuthErrorCode = "invalid_signature"
)

// AuthError is returned by webhook signature verification.
type AuthError struct {
	Code    AuthErrorCode
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("webhook authentication failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("webhook authentication failed (%s)", e.Code)
}

// NewAuthError creates an AuthError with the given code and message
func NewAuthError(code AuthErrorCode, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

// AuthErrorCodeOf extracts the AuthErrorCode from err, or "" when err is not
// an AuthError.
func AuthErrorCodeOf(err error) AuthErrorCode {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}

// ErrDuplicateMessageID is returned when recording a send with a message ID
// that already exists in the store. Message IDs are caller-generated and must
// be globally unique.
type ErrDuplicateMessageID struct {
	MessageID string
}

func (e *ErrDuplicateMessageID) Error() string {
	return fmt.Sprintf("outbound email with message ID %s already exists", e.MessageID)
}

// ErrNotFound is the common lookup-miss error for domain entities
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
