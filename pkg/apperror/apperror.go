// Package apperror defines the error taxonomy shared by every ledger operation.
// Each rejection carries a Kind so transports can report it without parsing messages.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindDuplicateBatch    Kind = "DUPLICATE_BATCH"
	KindDuplicateJourney  Kind = "DUPLICATE_JOURNEY"
	KindNotFound          Kind = "NOT_FOUND"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindInvalidState      Kind = "INVALID_STATE"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindIndexOutOfRange   Kind = "INDEX_OUT_OF_RANGE"
	KindNoData            Kind = "NO_DATA"
	KindInternal          Kind = "INTERNAL"
)

// Error is an application error with a taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
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

// Is matches another *Error by kind, so errors.Is(err, apperror.New(KindNotFound, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// WithDetail adds a single detail to the error
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Wrap wraps an existing error
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}

func DuplicateBatch(batchID string) *Error {
	return New(KindDuplicateBatch, "batch already registered").WithDetail("batch_id", batchID)
}

func DuplicateJourney(batchID string) *Error {
	return New(KindDuplicateJourney, "journey already started").WithDetail("batch_id", batchID)
}

func NotFound(resource, id string) *Error {
	return Newf(KindNotFound, "%s not found", resource).WithDetail("id", id)
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "caller is not authorized"
	}
	return New(KindUnauthorized, message)
}

func InvalidState(message string) *Error {
	return New(KindInvalidState, message)
}

func InvalidTransition(from, to string) *Error {
	return Newf(KindInvalidTransition, "cannot move from %s to %s", from, to).
		WithDetail("from", from).
		WithDetail("to", to)
}

func IndexOutOfRange(index, count int) *Error {
	return Newf(KindIndexOutOfRange, "index %d out of range [0,%d)", index, count)
}

func NoData(message string) *Error {
	return New(KindNoData, message)
}

// Internal wraps an infrastructure failure.
func Internal(message string, err error) *Error {
	return New(KindInternal, message).Wrap(err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
// for foreign errors. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
