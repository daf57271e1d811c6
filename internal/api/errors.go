// ABOUTME: Typed error taxonomy for backend API failures
// ABOUTME: Distinguishes validation, auth, not-found, server, and network errors

package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure.
type Kind int

const (
	// KindValidation is a local form check failure; it never reaches the network.
	KindValidation Kind = iota
	// KindAuth is a 401 / invalid-credentials failure.
	KindAuth
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is any other non-2xx response.
	KindServer
	// KindNetwork means no response was received at all.
	KindNetwork
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is a typed API failure carrying the response status and backend message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status > 0:
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation builds a local validation error that never hit the network.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// kindOf extracts the Kind from an error, or -1 when it is not an API error.
func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Kind(-1)
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return kindOf(err) == KindAuth }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool { return kindOf(err) == KindNetwork }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }
