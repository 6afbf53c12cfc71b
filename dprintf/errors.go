package dprintf

import (
	"errors"
	"fmt"
)

var (
	ErrMeasure         = errors.New("cannot measure formatted output")
	ErrAlloc           = errors.New("cannot allocate output buffer")
	ErrInvalidArgument = errors.New("invalid argument")

	errMissingArg = errors.New("missing argument")
	errArgType    = errors.New("argument type does not match conversion")
	errRange      = errors.New("width or precision out of range")
)

// ErrorKind separates malformed input from allocation pressure.
type ErrorKind int

const (
	KindMeasure ErrorKind = iota + 1
	KindAlloc
)

func (k ErrorKind) String() string {
	switch k {
	case KindMeasure:
		return "measurement"
	case KindAlloc:
		return "allocation"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every failed formatting call. Offset is the byte offset
// of the offending directive, or -1.
type Error struct {
	Kind     ErrorKind
	Template string
	Offset   int
	Err      error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s error in %q at offset %d: %v", e.Kind, e.Template, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s error in %q: %v", e.Kind, e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindMeasure:
		return target == ErrMeasure
	case KindAlloc:
		return target == ErrAlloc
	}
	return false
}

// Retryable reports whether the failure came from allocation pressure.
func (e *Error) Retryable() bool {
	return e.Kind == KindAlloc
}
