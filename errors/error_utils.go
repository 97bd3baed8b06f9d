package errors

import (
	"context"
	"errors"
)

// Offset returns the byte offset of the outermost error in the chain that carries one.
func Offset(err error) (int, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			if offset, ok := e.GetData(offsetKey).(int); ok {
				return offset, true
			}
		}
	}

	return 0, false
}

// IsDecodeError reports whether err, or anything it wraps, is an insufficient or malformed input error.
func IsDecodeError(err error) bool {
	return Is(err, ErrInsufficientInput) || Is(err, ErrMalformed)
}

// IsContextError reports cancellation and deadline errors, wrapped or not.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		Is(err, ErrContextCanceled)
}

// categories maps the first code of each range to its metrics label.
var categories = []struct {
	from, to ERR
	label    string
}{
	{10, 19, "block"},
	{30, 49, "transaction"},
	{120, 129, "decode"},
}

// GetErrorCategory labels err by the code range of its outermost *Error.
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	var e *Error
	if As(err, &e) {
		for _, c := range categories {
			if e.Code() >= c.from && e.Code() <= c.to {
				return c.label
			}
		}
	}

	return "unknown"
}
