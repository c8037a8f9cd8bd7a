package command

import "fmt"

const (
	msgSelectFirst    = "Select an element first."
	msgSelectTwo      = "Please select exactly two elements to connect."
	msgInvalidNumber  = "must be a number"
	msgNotPositive    = "must be greater than zero"
	msgNotFinite      = "must be a finite number"
	msgMissingArgs    = "missing argument"
	msgTooManyArgs    = "too many arguments"
	msgUnknownCommand = "unknown command"
)

// PreconditionError reports an operation that cannot run in the current
// state. The scene and selection are left unchanged.
type PreconditionError struct {
	Command string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// InputError reports an unusable value entered by the user
type InputError struct {
	Field  string
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Field, e.Input, e.Reason)
}

// ScriptError locates a failure in a command script
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
