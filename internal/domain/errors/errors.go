package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnknownMember    = errors.New("unknown member")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StoreError is the only error shape a persistence gateway returns.
// Kind is one of the sentinels above and is what errors.Is matches.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil && e.Err.Error() != e.Kind.Error() {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewStoreError builds a StoreError, defaulting the kind to ErrStoreUnavailable.
func NewStoreError(op string, kind, err error) *StoreError {
	if kind == nil {
		kind = ErrStoreUnavailable
	}
	return &StoreError{Op: op, Kind: kind, Err: err}
}

// ValidationError reports a rejected input field before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid is a shorthand for &ValidationError{Field: field, Reason: reason}.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
