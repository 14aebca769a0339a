package anneal

import (
	"fmt"
	"strings"
)

// Error is the domain error for annealing runs. Component and Op locate
// the failure; Err carries the underlying cause for errors.Is/As.
type Error struct {
	Message   string
	Op        string
	Component string
	Err       error
}

// Error joins the populated parts in component: op: message: cause order.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, 4)
	if e.Component != "" {
		parts = append(parts, e.Component)
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	parts = append(parts, e.Message)
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation sets the operation and returns the error for chaining.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent sets the component and returns the error for chaining.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewError creates an annealing error with the given message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// NewErrorf creates an annealing error with a formatted message.
func NewErrorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a message to an existing error. A nil err yields nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}
