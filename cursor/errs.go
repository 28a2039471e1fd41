package cursor

import "errors"

var ErrSerialized = errors.New("invalid serialized context")
