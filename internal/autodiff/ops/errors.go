package ops

import "errors"

// Errors returned by operations.
var (
	ErrInputIndex = errors.New("ops: input index out of range")
	ErrArity      = errors.New("ops: wrong number of arguments")
)
