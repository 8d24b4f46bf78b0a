package reflection

import (
	"errors"
	"fmt"
	"reflect"
)

// Common reflection error types
var (
	// ErrAmbiguousAccessor is returned when a property has more than one accessor
	// and no single most specific one can be chosen
	ErrAmbiguousAccessor = errors.New("ambiguous accessor")

	// ErrNoSuchAccessor is returned when a property has no getter or setter
	ErrNoSuchAccessor = errors.New("no such accessor")

	// ErrNoDefaultConstructor is returned when a type cannot be zero-constructed
	ErrNoDefaultConstructor = errors.New("no default constructor")

	// ErrIntrospectionFailure is returned when a type or one of its members
	// cannot be introspected
	ErrIntrospectionFailure = errors.New("introspection failure")

	// ErrInvalidTarget is returned when an accessor is invoked on a value it
	// cannot operate on
	ErrInvalidTarget = errors.New("invalid accessor target")

	// ErrInvocationFailed is returned when the code behind an accessor panics
	ErrInvocationFailed = errors.New("accessor invocation failed")
)

// ErrorKind classifies a ReflectionError
type ErrorKind int

const (
	KindAmbiguousAccessor ErrorKind = iota
	KindNoSuchAccessor
	KindNoDefaultConstructor
	KindIntrospectionFailure
)

// String returns the name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindAmbiguousAccessor:
		return "AmbiguousAccessor"
	case KindNoSuchAccessor:
		return "NoSuchAccessor"
	case KindNoDefaultConstructor:
		return "NoDefaultConstructor"
	case KindIntrospectionFailure:
		return "IntrospectionFailure"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAmbiguousAccessor:
		return ErrAmbiguousAccessor
	case KindNoSuchAccessor:
		return ErrNoSuchAccessor
	case KindNoDefaultConstructor:
		return ErrNoDefaultConstructor
	default:
		return ErrIntrospectionFailure
	}
}

// ReflectionError carries the kind of failure together with the offending
// property and declaring type
type ReflectionError struct {
	Kind     ErrorKind
	Property string
	Type     reflect.Type
	Detail   string
	Err      error
}

// Error implements the error interface
func (e *ReflectionError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Property != "" {
		msg += fmt.Sprintf(" for property '%s'", e.Property)
	}
	if e.Type != nil {
		msg += fmt.Sprintf(" in '%s'", e.Type)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the sentinel for this error's kind
func (e *ReflectionError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause, if any
func (e *ReflectionError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, property string, t reflect.Type, format string, args ...any) *ReflectionError {
	return &ReflectionError{
		Kind:     kind,
		Property: property,
		Type:     t,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// IsAmbiguousAccessor returns true if the error is ErrAmbiguousAccessor
func IsAmbiguousAccessor(err error) bool {
	return errors.Is(err, ErrAmbiguousAccessor)
}

// IsNoSuchAccessor returns true if the error is ErrNoSuchAccessor
func IsNoSuchAccessor(err error) bool {
	return errors.Is(err, ErrNoSuchAccessor)
}

// IsNoDefaultConstructor returns true if the error is ErrNoDefaultConstructor
func IsNoDefaultConstructor(err error) bool {
	return errors.Is(err, ErrNoDefaultConstructor)
}

// IsIntrospectionFailure returns true if the error is ErrIntrospectionFailure
func IsIntrospectionFailure(err error) bool {
	return errors.Is(err, ErrIntrospectionFailure)
}
