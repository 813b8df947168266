package scripting

import (
	"errors"
	"fmt"
)

var (
	// ErrBadArgument marks a host function called with a malformed argument.
	ErrBadArgument = errors.New("bad argument")
	// ErrMissingCallback is returned when the script lacks update().
	ErrMissingCallback = errors.New("callback not defined")
)

// ArgError describes one malformed argument to a host function.
type ArgError struct {
	N   int
	Msg string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("bad argument #%d (%s)", e.N, e.Msg)
}

func (e *ArgError) Is(target error) bool { return target == ErrBadArgument }

// ScriptError is a failed script call. Err is the typed cause when a host
// function raised one (ErrBadArgument, ecs.ErrResourceNotFound, ...),
// otherwise the Lua error itself.
type ScriptError struct {
	Func  string
	Msg   string
	Trace string
	Err   error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %s", e.Func, e.Msg)
}

func (e *ScriptError) Unwrap() error { return e.Err }
