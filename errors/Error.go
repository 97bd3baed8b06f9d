// Package errors provides the coded error type used across the decoder.
//
// Every failure is an *Error carrying an ERR code, a message, an optional wrapped
// error and optional key/value data. Decode failures always carry the byte offset
// at which they occurred, see Offset.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

type Error struct {
	code    ERR
	message string
	cause   error
	data    ErrDataI
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: %s (error code: %d), Message: %v", e.code, e.code, e.message)

	if e.cause != nil {
		fmt.Fprintf(&sb, ", Wrapped err: %v", e.cause)
	}

	if e.data != nil {
		fmt.Fprintf(&sb, ", Data:%s", e.data.Error())
	}

	return sb.String()
}

// Is matches on the code of e or of any *Error it wraps. A target that is not an
// *Error matches by message.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	for current := e; current != nil; {
		if current.code == targetError.code {
			return true
		}

		next, ok := current.cause.(*Error)
		if !ok {
			return false
		}

		current = next
	}

	return false
}

func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	if e.cause != nil {
		return errors.As(e.cause, target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) Data() ErrDataI {
	if e == nil {
		return nil
	}

	return e.data
}

func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = Fields{}
	}

	e.data.SetData(key, value)
}

func (e *Error) GetData(key string) interface{} {
	if e == nil || e.data == nil {
		return nil
	}

	return e.data.GetData(key)
}

// New creates an *Error. When the last param is an error it is wrapped and removed
// from the format params.
func New(code ERR, message string, params ...interface{}) *Error {
	var cause error

	if len(params) > 0 {
		if err, ok := params[len(params)-1].(error); ok {
			params = params[:len(params)-1]

			// a typed nil *Error stays unwrapped
			if tErr, isTyped := err.(*Error); !isTyped || tErr != nil {
				cause = err
			}
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	if _, ok := ERR_name[int32(code)]; !ok {
		message = "invalid error code"
	}

	return &Error{code: code, message: message, cause: cause}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
