package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDecode       = errors.New("decode error")
	ErrEncode       = errors.New("encode error")
	ErrStorage      = errors.New("storage error")
	ErrDisabled     = errors.New("disabled")
)

var (
	ErrImageSizeNotFound = NewError(ErrNotFound, "image size", "image size not found", nil)
	ErrUnsupportedFormat = NewError(ErrEncode, "encode", "unsupported output format", nil)
)

// Error carries one of the kind sentinels above plus the underlying cause.
// errors.Is matches both the kind and the cause.
type Error struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

func NewError(kind error, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func InvalidInput(op, message string) *Error {
	return NewError(ErrInvalidInput, op, message, nil)
}

func NotFound(op, message string, err error) *Error {
	return NewError(ErrNotFound, op, message, err)
}

func Decode(op string, err error) *Error {
	return NewError(ErrDecode, op, "", err)
}

func Encode(op string, err error) *Error {
	return NewError(ErrEncode, op, "", err)
}

func Storage(op string, err error) *Error {
	return NewError(ErrStorage, op, "", err)
}

// Kind returns the kind sentinel carried by err, or nil when err is not a
// classified domain error.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrNotFound, ErrDecode, ErrEncode, ErrStorage, ErrDisabled} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns the user-facing text of err: the Message of the outermost
// domain error when set, otherwise err.Error().
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}
