package stack

import "errors"

var (
	// ErrEmpty is returned by Pop and Front on a stack without elements.
	ErrEmpty = errors.New("stack is empty")
	// ErrUnknownKey is returned by PopKey and FrontKey for a key with no elements.
	ErrUnknownKey = errors.New("key not in stack")
)
