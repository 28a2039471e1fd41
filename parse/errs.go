package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse = errors.New("parse error")
	ErrKey   = fmt.Errorf("%w: unsupported map key", ErrParse)
)
