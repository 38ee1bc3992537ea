// Package errs defines the error taxonomy shared by the expression core,
// the adapter registry, and the adapter contract.
//
// Absence is not represented here. A missing vertex, attribute, or content
// is a nil result, never an error.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes an rpath error.
type Code string

const (
	// CodeAdapterResolution indicates an explicit adapter id is not
	// registered, or inference found no adapter for the graph.
	CodeAdapterResolution Code = "ADAPTER_RESOLUTION"

	// CodeUnsupportedCapability indicates an adapter was asked for a
	// capability it does not implement.
	CodeUnsupportedCapability Code = "UNSUPPORTED_CAPABILITY"

	// CodeInvalidSubscript indicates a subscript of the wrong type at
	// expression construction time.
	CodeInvalidSubscript Code = "INVALID_SUBSCRIPT"

	// CodeInvalidAdapterReference indicates the adapter argument to Eval is
	// neither an adapter, an id, nor nil.
	CodeInvalidAdapterReference Code = "INVALID_ADAPTER_REFERENCE"

	// CodeUnknownBuiltin indicates a built-in adapter name that does not exist.
	CodeUnknownBuiltin Code = "UNKNOWN_ADAPTER"
)

// Error is the error type returned by rpath packages.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// ID is the adapter id involved, if any.
	ID string

	// Capability is the adapter capability involved (name, adjacent,
	// attribute, content), if any.
	Capability string

	// Err is an underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewAdapterNotFound reports an explicit adapter id that is not registered.
func NewAdapterNotFound(id string) *Error {
	return &Error{
		Code:    CodeAdapterResolution,
		Message: fmt.Sprintf("adapter not found: %q", id),
		ID:      id,
	}
}

// NewCannotInferAdapter reports that no registered adapter adapts graph.
func NewCannotInferAdapter(graph any) *Error {
	return &Error{
		Code:    CodeAdapterResolution,
		Message: fmt.Sprintf("cannot determine adapter for graph of type %T", graph),
	}
}

// NewUnsupportedCapability reports an adapter capability that is not
// implemented. adapter names the offender in the message; nil leaves it
// unnamed, for code that cannot see the adapter embedding it.
func NewUnsupportedCapability(capability string, adapter any) *Error {
	msg := fmt.Sprintf("adapter does not implement %s", capability)
	if adapter != nil {
		msg = fmt.Sprintf("%T does not implement %s", adapter, capability)
	}
	return &Error{
		Code:       CodeUnsupportedCapability,
		Message:    msg,
		Capability: capability,
	}
}

// NewInvalidSubscript reports a subscript of a type the expression cannot accept.
// accepted describes what the expression would have taken.
func NewInvalidSubscript(sub any, accepted string) *Error {
	return &Error{
		Code:    CodeInvalidSubscript,
		Message: fmt.Sprintf("invalid subscript type %T: must be %s", sub, accepted),
	}
}

// NewInvalidAdapterReference reports an adapter argument of an unsupported type.
func NewInvalidAdapterReference(ref any) *Error {
	return &Error{
		Code:    CodeInvalidAdapterReference,
		Message: fmt.Sprintf("adapter must be an adapter.Adapter, an id, or nil; got %T", ref),
	}
}

// NewUnknownBuiltin reports a built-in adapter name that does not exist.
func NewUnknownBuiltin(name string, known []string) *Error {
	return &Error{
		Code:    CodeUnknownBuiltin,
		Message: fmt.Sprintf("no built-in adapter named %q (known: %v)", name, known),
		ID:      name,
	}
}

// CodeOf returns the Code of err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsAdapterResolution returns true if err is an adapter resolution error.
func IsAdapterResolution(err error) bool {
	return CodeOf(err) == CodeAdapterResolution
}

// IsUnsupportedCapability returns true if err is an unsupported capability error.
func IsUnsupportedCapability(err error) bool {
	return CodeOf(err) == CodeUnsupportedCapability
}

// IsInvalidSubscript returns true if err is an invalid subscript error.
func IsInvalidSubscript(err error) bool {
	return CodeOf(err) == CodeInvalidSubscript
}

// IsInvalidAdapterReference returns true if err is an invalid adapter reference error.
func IsInvalidAdapterReference(err error) bool {
	return CodeOf(err) == CodeInvalidAdapterReference
}
