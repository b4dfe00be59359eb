// Package result holds the user-facing outcome of a manager operation.
package result

import (
	"encoding/json"
	"strings"
)

// Outcome is either a success carrying data or a failure carrying an error.
// Both variants carry a human readable message. The zero value is a failure
// without an error and should not be constructed directly.
type Outcome[T any] struct {
	ok      bool
	message string
	data    T
	err     error
}

// Succeeded builds the success variant.
func Succeeded[T any](message string, data T) Outcome[T] {
	return Outcome[T]{ok: true, message: message, data: data}
}

// Failed builds the failure variant.
func Failed[T any](message string, err error) Outcome[T] {
	return Outcome[T]{message: message, err: err}
}

func (o Outcome[T]) OK() bool        { return o.ok }
func (o Outcome[T]) Message() string { return o.message }

// Data returns the payload and true only for the success variant.
func (o Outcome[T]) Data() (T, bool) {
	if !o.ok {
		var zero T
		return zero, false
	}
	return o.data, true
}

// Err returns the failure cause, nil for the success variant.
func (o Outcome[T]) Err() error {
	if o.ok {
		return nil
	}
	return o.err
}

// Detail is the text a client sees for a failure: the message naming the
// entity, followed by the cause when there is one.
func (o Outcome[T]) Detail() string {
	err := o.Err()
	if err == nil {
		return o.message
	}
	if o.message == "" {
		return err.Error()
	}
	return strings.TrimSuffix(o.message, ".") + ": " + err.Error()
}

type successBody[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	if o.ok {
		return json.Marshal(successBody[T]{Success: true, Message: o.message, Data: o.data})
	}
	body := failureBody{Message: o.message}
	if o.err != nil {
		body.Error = o.err.Error()
	}
	return json.Marshal(body)
}
