package edit

import (
	"errors"
	"fmt"

	"github.com/signadot/docedit/dpath"
)

var (
	ErrOperation     = errors.New("data model operation error")
	ErrNotCollection = fmt.Errorf("%w: not a collection", ErrOperation)
	ErrMultiPath     = fmt.Errorf("%w: multi-path component", ErrOperation)
	ErrKeyType       = fmt.Errorf("%w: key must be a string or null", ErrOperation)
)

// OperationError reports an edit no valid program makes, such as pushing
// onto a number. Unlike a missing target, it is never a normal outcome.
type OperationError struct {
	Op   string
	Path dpath.Path
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
