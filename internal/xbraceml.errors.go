package internal

import (
	"fmt"
)

// DispatchError reports a fatal failure while rendering one element.
type DispatchError struct {
	Message  string
	Element  string
	Position Position
	Cause    error
}

// NewDispatchError creates a dispatch error for the named element.
func NewDispatchError(message, element string, pos Position, cause error) *DispatchError {
	return &DispatchError{
		Message:  message,
		Element:  element,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *DispatchError) Error() string {
	msg := fmt.Sprintf(ErrFmtElementMessage, e.Message, e.Element)
	if e.Position.Line > 0 {
		msg += " at " + e.Position.String()
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DispatchError) Unwrap() error {
	return e.Cause
}

// IncludeDepthError is returned when processed inclusion nests deeper than allowed.
type IncludeDepthError struct {
	Path     string
	Depth    int
	Position Position
}

// NewIncludeDepthError creates an include depth error.
func NewIncludeDepthError(path string, depth int, pos Position) *IncludeDepthError {
	return &IncludeDepthError{
		Path:     path,
		Depth:    depth,
		Position: pos,
	}
}

// Error implements the error interface
func (e *IncludeDepthError) Error() string {
	return fmt.Sprintf(ErrFmtPathDepth, ErrMsgIncludeDepthExceeded, e.Path, e.Depth)
}

// InterruptedError is returned when the context ends mid-conversion.
type InterruptedError struct {
	Position Position
	Cause    error
}

// NewInterruptedError creates an interrupted error at pos.
func NewInterruptedError(pos Position, cause error) *InterruptedError {
	return &InterruptedError{
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *InterruptedError) Error() string {
	return ErrMsgConversionInterrupted + ": " + e.Cause.Error()
}

// Unwrap returns the context error.
func (e *InterruptedError) Unwrap() error {
	return e.Cause
}
