// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy for buffer and pool operations.
// Every fallible operation in this library returns one of the sentinel
// errors below; none of them is process-fatal.

package api

import "fmt"

// Sentinel errors returned by buffer, circular and pool operations.
var (
	// ErrPositionOutOfBounds: requested position exceeds the valid length.
	ErrPositionOutOfBounds = fmt.Errorf("secbuf: position out of bounds")

	// ErrIncrementTooLarge: a pos/len increment exceeds the safety ceiling
	// or the current bounds. Guards against malicious length fields.
	ErrIncrementTooLarge = fmt.Errorf("secbuf: increment too large")

	// ErrSizeTooBig: requested size exceeds the absolute buffer maximum.
	ErrSizeTooBig = fmt.Errorf("secbuf: size exceeds maximum")

	// ErrBufferOverflow: a read or write would cross the allocated boundary.
	ErrBufferOverflow = fmt.Errorf("secbuf: buffer overflow")

	// ErrInsufficientSpace: ring buffer has no room for the full write.
	// Partial writes are never silently accepted.
	ErrInsufficientSpace = fmt.Errorf("secbuf: insufficient space")

	// ErrStringTooLong: a length-prefixed string exceeds the wire maximum.
	ErrStringTooLong = fmt.Errorf("secbuf: string exceeds maximum length")

	// ErrViewTooLong: a zero-copy view request exceeds the sanity ceiling.
	ErrViewTooLong = fmt.Errorf("secbuf: view exceeds maximum length")

	// ErrWouldWrap: a fixed-length zero-copy write view would cross the ring
	// boundary; use the two-slice form or the copying write instead.
	ErrWouldWrap = fmt.Errorf("secbuf: contiguous view would wrap")
)

// ErrorCode identifies a failure condition in machine-readable form.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodePositionOutOfBounds
	CodeIncrementTooLarge
	CodeSizeTooBig
	CodeBufferOverflow
	CodeInsufficientSpace
	CodeStringTooLong
	CodeViewTooLong
	CodeWouldWrap
)

// Error is a structured error carrying a condition code and optional context.
// The plain sentinels above are sufficient for most callers; Error exists for
// protocol stacks that need to report which condition occurred without string
// matching.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// NewError wraps a sentinel error with a condition code.
func NewError(code ErrorCode, cause error) *Error {
	return &Error{
		Code:    code,
		Message: cause.Error(),
		cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel so errors.Is keeps working through wrapping.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithContext attaches context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
