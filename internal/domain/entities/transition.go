package entities

import "fmt"

// InvalidTransitionError reports a state change that is not in the entity's
// transition table. Both states are kept so the API can tell the caller what
// was attempted and where the document actually is.

type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %q to %q", e.Entity, e.From, e.To)
}

func NewInvalidTransition(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}
