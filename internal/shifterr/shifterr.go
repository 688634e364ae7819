// Package shifterr defines the error taxonomy shared by every layer of the
// scheduling core: InvalidInput, IllegalMove, NotFound,
// InvalidState, Interrupted, and Internal.
package shifterr

import (
	"errors"
	"fmt"
)

// Kind is one of the six error taxonomy buckets every layer reports through.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindIllegalMove  Kind = "illegal_move"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindInterrupted  Kind = "interrupted"
	KindInternal     Kind = "internal"
)

// Error is the structured failure record surfaced to callers: {code,
// message, job_id?}.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	JobID   string
	Cause   error
}

func (e *Error) Error() string {
	if e.JobID != "" {
		return fmt.Sprintf("%s: %s (job %s)", e.Code, e.Message, e.JobID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on Kind+Code without comparing messages.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Code == other.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// WithJobID returns a copy of e carrying the given job id.
func (e *Error) WithJobID(id string) *Error {
	cp := *e
	cp.JobID = id
	return &cp
}

func InvalidInput(code, message string) *Error { return New(KindInvalidInput, code, message) }
func IllegalMove(code, message string) *Error  { return New(KindIllegalMove, code, message) }
func NotFound(code, message string) *Error     { return New(KindNotFound, code, message) }
func InvalidState(code, message string) *Error { return New(KindInvalidState, code, message) }
func Interrupted(code, message string) *Error  { return New(KindInterrupted, code, message) }
func Internal(code, message string) *Error     { return New(KindInternal, code, message) }

// InternalFrom wraps an unexpected invariant breach (e.g. a panic recovered
// during solve) as an Internal error, never silently swallowed.
func InternalFrom(cause error) *Error {
	return Wrap(KindInternal, "internal.invariant_breach", "internal invariant violated", cause)
}

// IsKind reports whether the outermost *Error in err's chain carries the
// given kind; kinds of *Errors wrapped beneath it are not consulted.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
