package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for commands the controller does not know
var ErrUnknownCommand = errors.New("unknown command")

// StepError reports a step argument that could not be resolved
type StepError struct {
	Command string // command the argument was given to
	Input   string // offending argument (empty if missing)
	Reason  string // human-readable explanation
}

func (e *StepError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid step for %s", e.Command))

	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("input=%q", e.Input))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func NewMissingStep(command string) *StepError {
	return &StepError{
		Command: command,
		Reason:  "missing step argument",
	}
}

func NewUnparsableStep(command, input string) *StepError {
	return &StepError{
		Command: command,
		Input:   input,
		Reason:  "expected a number between 0 and 7 or a step name",
	}
}
