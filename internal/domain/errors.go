package domain

import (
	"errors"
	"fmt"
)

// Kind classifies provider failures for callers.
type Kind int

const (
	KindRemote Kind = iota + 1
	KindServer
	KindEncode
	KindNoField
	KindTypeMismatch
	KindNone
	KindUnimplemented
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindServer:
		return "server"
	case KindEncode:
		return "encode"
	case KindNoField:
		return "no_field"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindNone:
		return "none"
	case KindUnimplemented:
		return "unimplemented"
	default:
		return "unknown"
	}
}

// Error is the shared failure type of every provider operation.
//
// KindRemote and KindServer currently describe the same class of upstream
// contact failure; they stay separate so the front-end can map them differently.
type Error struct {
	Kind     Kind
	Path     string // JSON path for NoField, field name for TypeMismatch
	Expected string // expected shape for TypeMismatch
	Engine   string // encoder name for Encode
	Err      error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrRemote        = &Error{Kind: KindRemote}
	ErrServer        = &Error{Kind: KindServer}
	ErrEncode        = &Error{Kind: KindEncode}
	ErrNoField       = &Error{Kind: KindNoField}
	ErrTypeMismatch  = &Error{Kind: KindTypeMismatch}
	ErrNone          = &Error{Kind: KindNone}
	ErrUnimplemented = &Error{Kind: KindUnimplemented}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindRemote, KindServer:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
	case KindEncode:
		if e.Err != nil {
			return fmt.Sprintf("encode (%s): %v", e.Engine, e.Err)
		}
		return fmt.Sprintf("encode (%s)", e.Engine)
	case KindNoField:
		return fmt.Sprintf("no field: %s", e.Path)
	case KindTypeMismatch:
		return fmt.Sprintf("type mismatch: %s is not %s", e.Path, e.Expected)
	case KindNone:
		return "not found"
	case KindUnimplemented:
		return "not implemented"
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func Remote(err error) error {
	return &Error{Kind: KindRemote, Err: err}
}

func Server(err error) error {
	return &Error{Kind: KindServer, Err: err}
}

func Encode(engine string, err error) error {
	return &Error{Kind: KindEncode, Engine: engine, Err: err}
}

func NoField(path string) error {
	return &Error{Kind: KindNoField, Path: path}
}

func TypeMismatch(field, expected string) error {
	return &Error{Kind: KindTypeMismatch, Path: field, Expected: expected}
}

// KindOf reports the Kind of err, or 0 when err is not a provider error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
