package service

import (
	"blooddonation/internal/model"
	"context"
	"errors"
	"fmt"
)

// Kind classifies a service failure. The HTTP layer maps each kind to one status code.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindProcessor
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindProcessor:
		return "processor"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Error is the only error type services hand back to callers.
// Code is an optional machine-readable refinement such as ERR_INVALID_AMOUNT.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Internal reports whether the failure comes from infrastructure rather than the caller.
func (e *Error) Internal() bool {
	return e.Kind == KindStore || e.Kind == KindProcessor
}

const (
	CodeInvalidAmount     = "ERR_INVALID_AMOUNT"
	CodeInvalidTransition = "ERR_INVALID_TRANSITION"
	CodeInvalidStatus     = "ERR_INVALID_STATUS"
	CodeAccountBlocked    = "ERR_ACCOUNT_BLOCKED"
	CodeDuplicate         = "ERR_DUPLICATE"
)

func newError(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func invalid(code, message string) *Error {
	return newError(KindInvalid, code, message, nil)
}

func forbidden(message string) *Error {
	return newError(KindForbidden, "", message, nil)
}

func notFound(message string) *Error {
	return newError(KindNotFound, "", message, nil)
}

func conflict(code, message string) *Error {
	return newError(KindConflict, code, message, nil)
}

// Unauthorized is used by transports when no valid identity accompanies a call.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, "", message, nil)
}

// Invalid wraps a caller input problem detected outside the services.
func Invalid(message string, err error) *Error {
	return newError(KindInvalid, "", message, err)
}

// Storage wraps an infrastructure failure from a non-database backend.
func Storage(message string, err error) *Error {
	return newError(KindStore, "", message, err)
}

// fromStore translates a repository error; what names the record for messages.
func fromStore(err error, what string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		return newError(KindNotFound, "", what+" not found", err)
	case errors.Is(err, model.ErrDuplicate):
		return newError(KindConflict, CodeDuplicate, what+" already exists", err)
	case errors.Is(err, model.ErrStaleStatus):
		return newError(KindConflict, CodeInvalidTransition, what+" status changed concurrently", err)
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindStore, "", "store timed out", err)
	}
	return newError(KindStore, "", "store failure", err)
}

// KindOf reports the kind carried by err; unknown errors count as store failures.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStore
}
