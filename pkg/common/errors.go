package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the script cache. Callers branch on these with
// errors.Is: UnknownScript means the name was never registered and
// re-registration can help, RemoteInvokeFailed means the script is
// registered but the store rejected the execution.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnknownScript      = errors.New("script not registered")
	ErrRemoteLoadFailed   = errors.New("remote script load failed")
	ErrRemoteInvokeFailed = errors.New("remote script invoke failed")
	ErrFileReadFailed     = errors.New("script file read failed")
)

// Error attaches one of the kind sentinels to a message and an optional
// underlying cause. errors.Is matches the kind; errors.Unwrap yields the
// cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error of the given kind. cause may be nil.
func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// CodeForError maps an error to the machine-readable code used in API
// responses.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrUnknownScript):
		return "unknown_script"
	case errors.Is(err, ErrRemoteLoadFailed):
		return "remote_load_failed"
	case errors.Is(err, ErrRemoteInvokeFailed):
		return "remote_invoke_failed"
	case errors.Is(err, ErrFileReadFailed):
		return "file_read_failed"
	default:
		return "internal_error"
	}
}
