package dsl

import "fmt"

// ConfigError represents a single definition validation failure.
type ConfigError struct {
	Kind   string // "state", "group", or "transition"
	ID     string // identifier of the offending entity
	Reason string // human-readable reason
	Err    error  // sentinel from pkg/domain, if applicable
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// AggregateError collects every validation failure found during Build.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d configuration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ConfigErrors returns the individual errors if err is an AggregateError,
// nil otherwise.
func ConfigErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
