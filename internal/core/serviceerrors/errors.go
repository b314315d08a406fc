// Package serviceerrors classifies failures of the pantry core so adapters
// can translate them without inspecting messages.
package serviceerrors

import (
	"errors"
	"slices"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	// KindUnauthorized is a caller touching a product it does not own.
	KindUnauthorized
	// KindStoreFailure is an unreachable or failing backing store.
	KindStoreFailure
)

var kindNames = map[ErrorKind]string{
	KindNotFound:            "not_found",
	KindConflict:            "conflict",
	KindUnprocessableEntity: "unprocessable_entity",
	KindInvalidRequest:      "invalid_request",
	KindUnauthorized:        "unauthorized",
	KindStoreFailure:        "store_failure",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches any ServiceError of the same kind, so errors.Is(err,
// &ServiceError{Kind: KindNotFound}) works through wrapping.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the outermost ServiceError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind, true
	}
	return 0, false
}

// IsOfKind reports whether err carries any of kinds.
func IsOfKind(err error, kinds ...ErrorKind) bool {
	kind, ok := KindOf(err)
	return ok && slices.Contains(kinds, kind)
}

func newError(kind ErrorKind, message string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Message: message, Err: err}
}

func NewNotFoundError(message string) *ServiceError {
	return newError(KindNotFound, message, nil)
}

func NewConflictError(message string) *ServiceError {
	return newError(KindConflict, message, nil)
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return newError(KindUnprocessableEntity, message, nil)
}

func NewInvalidRequestError(message string) *ServiceError {
	return newError(KindInvalidRequest, message, nil)
}

func NewUnauthorizedError(message string) *ServiceError {
	return newError(KindUnauthorized, message, nil)
}

func NewStoreFailureError(message string, err error) *ServiceError {
	return newError(KindStoreFailure, message, err)
}
