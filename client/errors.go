package client

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can branch without parsing
// status codes.
type Kind int

const (
	KindTransport Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "transport"
	}
}

// Error is the error type returned by all Client calls.
type Error struct {
	Kind    Kind
	Status  int
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func kindIs(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool { return kindIs(err, KindNotFound) }

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return kindIs(err, KindAuth) }

// IsConflict reports whether err is a conflict, including duplicate user
// creation.
func IsConflict(err error) bool { return kindIs(err, KindConflict) }
