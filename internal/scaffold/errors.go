package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDestinationNotEmpty is returned when the destination already has
	// entries. Materialization never merges into an existing project.
	ErrDestinationNotEmpty = errors.New("destination directory is not empty")

	// ErrRewriteNoMatch is returned when a rewrite target exists but its
	// substitution point is not found exactly once.
	ErrRewriteNoMatch = errors.New("substitution point not found")

	// ErrUnknownTemplate is returned when the template kind has no directory
	// in the template source.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Step names a phase of materialization, in execution order.
type Step string

const (
	StepPrecheck  Step = "precheck"
	StepCopy      Step = "copy"
	StepSwap      Step = "swap"
	StepDelete    Step = "delete"
	StepRewrite   Step = "rewrite"
	StepGitignore Step = "gitignore"
	StepEnv       Step = "env"
)

// MaterializeError reports the step and path at which materialization
// stopped. Files written by earlier steps are left in place.
type MaterializeError struct {
	Step Step
	Path string
	Err  error
}

func (e *MaterializeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *MaterializeError) Unwrap() error {
	return e.Err
}

// Violation is one failed post-materialization check.
type Violation struct {
	// Check is a stable identifier such as "dialect" or "env".
	Check   string
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Check + ": " + v.Message
	}
	return v.Check + " (" + v.Path + "): " + v.Message
}

// ValidationError lists every check that failed.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%d validation check(s) failed: %s", len(e.Violations), strings.Join(parts, "; "))
}
