package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrPersistence            = errors.New("persistence failure")
	ErrConcurrentModification = errors.New("record was modified concurrently")
)

// ObjectNotFoundError reports a missing restaurant, menu item, order or agent.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() []error {
	return unwrap(ErrObjectNotFound, e.Cause)
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() []error {
	return unwrap(ErrValueIsInvalid, e.Cause)
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, e.ParamName, sanitize(e.Value), sanitize(e.Min), sanitize(e.Max)), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	return unwrap(ErrValueIsOutOfRange, e.Cause)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() []error {
	return unwrap(ErrValueIsRequired, e.Cause)
}

// PermissionError is returned when an actor attempts a view or transition its role does not allow.
// It is surfaced to the user and never retried.
type PermissionError struct {
	Actor  string
	Action string
	Cause  error
}

func NewPermissionError(actor, action string) *PermissionError {
	return &PermissionError{Actor: actor, Action: action}
}

func NewPermissionErrorWithCause(actor, action string, cause error) *PermissionError {
	return &PermissionError{Actor: actor, Action: action, Cause: cause}
}

func (e *PermissionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s may not %s", ErrPermissionDenied, e.Actor, e.Action), e.Cause)
}

func (e *PermissionError) Unwrap() []error {
	return unwrap(ErrPermissionDenied, e.Cause)
}

// PersistenceError wraps a failed store operation. Conditional writes are all-or-nothing,
// so the caller may retry the whole operation.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Operation), e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	return unwrap(ErrPersistence, e.Cause)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

func unwrap(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}

// sanitize keeps user-supplied values on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
