package input

import "errors"

var (
	ErrMalformed     = errors.New("malformed command")
	ErrUnknownAction = errors.New("unknown action")
)
