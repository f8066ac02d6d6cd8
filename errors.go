package climenu

import "fmt"

// ErrorType represents the category of error for classification and handling.
// It enables callers to distinguish registration failures, which must be fixed
// in code, from runtime conditions such as a missing command that are expected
// and recoverable.
type ErrorType string

// Error type constants define the categories of errors raised by the registry.
const (
	ErrTypeRegistration ErrorType = "registration"
	ErrTypeNoCommand    ErrorType = "no command"
	ErrTypeState        ErrorType = "state"
)

// RegistryError is the base error type that provides structured error
// information.
// The optional command name gives context when a failure relates to a single
// registered command rather than the registry as a whole.
type RegistryError struct {
	Type    ErrorType
	Command string
	Message string
	Cause   error
}

func (e *RegistryError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Command, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// Is implements error identity checking for Go 1.13+ error handling.
// Two errors match when they carry the same ErrorType, so callers can use
// errors.Is with a zero-value target of the right type.
func (e *RegistryError) Is(target error) bool {
	t, ok := target.(*RegistryError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// RegistrationError reports a command spec that could not be registered:
// a missing or malformed doc comment, an unknown parameter type name, or a
// duplicate command or parameter name. It is not recoverable automatically;
// the registration call site must be fixed.
type RegistrationError struct {
	*RegistryError
}

// NewRegistrationError creates a registration error for the named command.
// The command name may be empty when the failure precedes name extraction.
func NewRegistrationError(command, message string, cause error) *RegistrationError {
	return &RegistrationError{
		RegistryError: &RegistryError{
			Type:    ErrTypeRegistration,
			Command: command,
			Message: message,
			Cause:   cause,
		},
	}
}

// NoCommandError is the distinguished condition raised by Parse when the
// argument vector selects no sub-command. Help text has already been printed
// by the time it is returned, so callers typically catch it with errors.As
// and exit cleanly.
type NoCommandError struct {
	*RegistryError
}

// NewNoCommandError creates the no-command-selected condition.
func NewNoCommandError() *NoCommandError {
	return &NoCommandError{
		RegistryError: &RegistryError{
			Type:    ErrTypeNoCommand,
			Message: "no command supplied",
		},
	}
}

// StateError reports a call sequence violation, such as Execute being invoked
// before a successful Parse.
type StateError struct {
	*RegistryError
}

// NewStateError creates a call sequence violation error.
func NewStateError(message string) *StateError {
	return &StateError{
		RegistryError: &RegistryError{
			Type:    ErrTypeState,
			Message: message,
		},
	}
}
