package service

import "fmt"

// Kind classifies a service failure so callers can react structurally
// instead of inspecting message strings.
type Kind int

const (
	// KindInternal is an unexpected store or infrastructure failure.
	KindInternal Kind = iota
	// KindInvalidRequest means a required field was missing or malformed.
	KindInvalidRequest
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindUnauthorized means credentials did not verify.
	KindUnauthorized
	// KindNotFound means the referenced record does not exist.
	KindNotFound
)

// Error is a kinded service error. Msg is safe to show to clients; Err holds
// the underlying cause for logging and is never serialized.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// invalid builds an InvalidRequest error.
func invalid(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: msg}
}

// conflict builds a Conflict error.
func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// unauthorized builds an Unauthorized error.
func unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// notFound builds a NotFound error.
func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// internal wraps an unexpected failure. The cause is kept for logs; clients
// only ever see msg.
func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
