package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid        = errors.New("invalid schema")
	ErrRecursiveRef   = errors.New("invalid recursive reference")
	ErrParentKeyState = errors.New("cannot dig past parent key")
	ErrComponent      = errors.New("invalid path component")
)

// StateError is the value schema and data cursors panic with when used in a
// way no valid program does, such as digging past the parent key.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
