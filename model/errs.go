package model

import "errors"

var (
	ErrUnsupported = errors.New("unsupported raw value")
	ErrParse       = errors.New("parse error")
)
