// Package errs defines the application error type shared by the domain
// packages. Domain code attaches a machine-readable code to every failure;
// the HTTP layer translates codes into status codes and never inspects
// message strings.
package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	// EINVALID means the input was malformed or failed validation.
	EINVALID = "invalid"
	// ENOTFOUND means a referenced user, profile or post does not exist.
	ENOTFOUND = "not_found"
	// ECONFLICT means the operation collides with existing state, such as
	// a duplicate username or an already pending friend request.
	ECONFLICT = "conflict"
	// ESELF means sender and receiver are the same user on a relationship
	// mutation.
	ESELF = "self_reference"
	// ENOPENDING means accept/reject was attempted with no matching
	// pending friend request.
	ENOPENDING = "no_pending_request"
	// ENOTFRIENDS means unfriend was attempted with no accepted
	// friendship between the pair.
	ENOTFRIENDS = "not_friends"
	// EINTERNAL is any failure the caller cannot act on.
	EINTERNAL = "internal"
)

// Error is an application error with a stable code and a human-readable
// message safe to return to the client.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errs: code=%s message=%s", e.Code, e.Message)
}

// Errorf builds a new *Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of err, EINTERNAL for non-application errors
// and the empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of err. Non-application errors are
// masked so internal details never reach the client.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
