package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	tests := []struct {
		name     string
		err      error
		kind     error
		notKind  error
		wantCode string
	}{
		{
			name:     "invalid argument",
			err:      NewError(ErrInvalidArgument, "script name is empty", nil),
			kind:     ErrInvalidArgument,
			notKind:  ErrUnknownScript,
			wantCode: "invalid_argument",
		},
		{
			name:     "unknown script",
			err:      NewError(ErrUnknownScript, "script incr is not registered", nil),
			kind:     ErrUnknownScript,
			notKind:  ErrRemoteInvokeFailed,
			wantCode: "unknown_script",
		},
		{
			name:     "remote load failed with cause",
			err:      NewError(ErrRemoteLoadFailed, "loading script incr", cause),
			kind:     ErrRemoteLoadFailed,
			notKind:  ErrRemoteInvokeFailed,
			wantCode: "remote_load_failed",
		},
		{
			name:     "remote invoke failed",
			err:      NewError(ErrRemoteInvokeFailed, "invoking script incr", cause),
			kind:     ErrRemoteInvokeFailed,
			notKind:  ErrRemoteLoadFailed,
			wantCode: "remote_invoke_failed",
		},
		{
			name:     "file read failed",
			err:      NewError(ErrFileReadFailed, "reading incr.lua", cause),
			kind:     ErrFileReadFailed,
			notKind:  ErrInvalidArgument,
			wantCode: "file_read_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false; want true", tt.err, tt.kind)
			}
			if errors.Is(tt.err, tt.notKind) {
				t.Errorf("errors.Is(%v, %v) = true; want false", tt.err, tt.notKind)
			}
			if code := CodeForError(tt.err); code != tt.wantCode {
				t.Errorf("CodeForError(%v) = %q; want %q", tt.err, code, tt.wantCode)
			}
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := NewError(ErrFileReadFailed, "reading incr.lua", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should reach the cause through Unwrap")
	}
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v; want %v", got, cause)
	}
}

func TestErrorMessageFormat(t *testing.T) {
	withCause := NewError(ErrRemoteLoadFailed, "loading script incr", fmt.Errorf("timeout"))
	want := "remote script load failed: loading script incr: timeout"
	if withCause.Error() != want {
		t.Errorf("Error() = %q; want %q", withCause.Error(), want)
	}

	withoutCause := NewError(ErrUnknownScript, "script decr is not registered", nil)
	want = "script not registered: script decr is not registered"
	if withoutCause.Error() != want {
		t.Errorf("Error() = %q; want %q", withoutCause.Error(), want)
	}
}

func TestCodeForErrorUnknownKind(t *testing.T) {
	if code := CodeForError(fmt.Errorf("boom")); code != "internal_error" {
		t.Errorf("CodeForError = %q; want internal_error", code)
	}
}
