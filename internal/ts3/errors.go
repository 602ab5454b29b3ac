package ts3

import (
	"errors"
	"fmt"
)

// ErrClientLibraryUnavailable reports that the native client library is
// not part of this build.
var ErrClientLibraryUnavailable = errors.New("ts3 client library unavailable")

// ErrorCode is a status code reported by the client library. Zero is
// success; everything else is a failure.
type ErrorCode uint32

const (
	ErrorOK                  ErrorCode = 0x0000
	ErrorUndefined           ErrorCode = 0x0001
	ErrorNotImplemented      ErrorCode = 0x0002
	ErrorClientInvalidID     ErrorCode = 0x0200
	ErrorClientNicknameInUse ErrorCode = 0x0201
)

// Ok reports whether the code signals success.
func (c ErrorCode) Ok() bool {
	return c == ErrorOK
}

// String returns the library's label for known codes and a hex form for
// the rest.
func (c ErrorCode) String() string {
	switch c {
	case ErrorOK:
		return "ok"
	case ErrorUndefined:
		return "undefined"
	case ErrorNotImplemented:
		return "not_implemented"
	case ErrorClientInvalidID:
		return "client_invalid_id"
	case ErrorClientNicknameInUse:
		return "client_nickname_inuse"
	default:
		return fmt.Sprintf("error_0x%04x", uint32(c))
	}
}

// Error describes a failed client library call.
type Error struct {
	Op      string
	Code    ErrorCode
	Message string
}

// Error formats the failure the way the library logs its own: the call,
// the numeric code, and the resolved message.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown"
	}
	return fmt.Sprintf("%s failed: %d (%s)", e.Op, uint32(e.Code), msg)
}

// CodeOf extracts the library code from err. Errors that did not come
// from the library map to ErrorUndefined, mirroring how the library
// resolves codes it cannot explain.
func CodeOf(err error) ErrorCode {
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr.Code
	}
	return ErrorUndefined
}
