package domain

import (
	"errors"
	"fmt"
)

// RemoteErrorKind classifies failures of remote API calls.
type RemoteErrorKind string

const (
	// ErrKindUnauthorized: credential missing, invalid or expired. Handled
	// once, centrally, by the session invalidation policy.
	ErrKindUnauthorized RemoteErrorKind = "unauthorized"
	ErrKindForbidden    RemoteErrorKind = "forbidden"
	ErrKindNotFound     RemoteErrorKind = "not_found"
	// ErrKindServer: any 5xx response.
	ErrKindServer RemoteErrorKind = "server_error"
	// ErrKindValidation: 4xx with a structured message from the server,
	// surfaced to the user verbatim.
	ErrKindValidation RemoteErrorKind = "validation"
	// ErrKindNetwork: transport failure or timeout. No structured message
	// is available, callers fall back to a generic one.
	ErrKindNetwork RemoteErrorKind = "network"
)

// RemoteError is a classified failure from the remote commerce API.
type RemoteError struct {
	Kind    RemoteErrorKind
	Status  int    // HTTP status, 0 for transport failures
	Message string // server-provided message, empty for transport failures
	Err     error  // underlying cause, if any
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote: %s (%s)", e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("remote: %s", e.Kind)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// KindOf returns the remote error kind, or "" when err is not a RemoteError.
func KindOf(err error) RemoteErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsUnauthorized reports whether err is a remote unauthorized rejection.
func IsUnauthorized(err error) bool {
	return KindOf(err) == ErrKindUnauthorized
}

// Transient reports whether err looks like a hiccup (transport failure or
// 5xx) rather than a definite rejection of the request or credential.
func Transient(err error) bool {
	k := KindOf(err)
	return k == ErrKindNetwork || k == ErrKindServer
}

// UserMessage extracts the server's structured message from err, falling
// back to the supplied generic message when none is available.
func UserMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
