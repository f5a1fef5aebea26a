package prompt

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrCancelled is returned when the user chooses to exit or input ends.
var ErrCancelled = errors.New("cancelled by user")

// Option is one entry of a choice menu.
type Option struct {
	Value string
	Label string
}

// Source asks the user questions.
type Source interface {
	// Choice presents options in order and returns the Value of the one picked.
	Choice(label string, options []Option) (string, error)
	// Text asks for free text, re-asking until validate accepts it.
	Text(label string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question; an empty answer yields def.
	Confirm(label string, def bool) (bool, error)
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidationError describes rejected input. It is always recovered by
// asking again and never ends a run.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateName accepts non-empty names made of letters, digits, hyphens and
// underscores.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Input: name, Reason: "project name cannot be empty"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{
			Input:  name,
			Reason: fmt.Sprintf("invalid name %q: use only letters, digits, hyphens and underscores", name),
		}
	}
	return nil
}
