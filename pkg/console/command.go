// Package console runs CLI subcommands through a fixed pipeline: options
// are discovered and bound, requirements checked, arguments and options
// merged, transformed, validated, transformed again, and finally handed to
// the command's handler. Commands opt into each step by implementing the
// matching capability interface.
package console

import (
	"context"

	"github.com/rileyhilliard/console/pkg/require"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// Command is the minimum a subcommand implements.
//
// Handle returns the exit status. Returning an *Exit error stops with that
// status and message; any other error is a fault and is returned to the
// caller of Execute.
type Command interface {
	Definition() Definition
	Handle(ctx context.Context, in *Invocation) (int, error)
}

// Validatable commands have their merged data checked before Handle.
type Validatable interface {
	Rules() validation.RuleSet
}

// Messager overrides validation messages by "field.rule" or "rule".
type Messager interface {
	Messages() map[string]string
}

// Attributer supplies :attribute replacements for validation messages.
type Attributer interface {
	Attributes() map[string]string
}

// Transformable commands rewrite values before validation.
type Transformable interface {
	Transformers() transform.Map
}

// PostValidationTransformable commands rewrite values once they are known
// to be valid.
type PostValidationTransformable interface {
	TransformersAfterValidation() transform.Map
}

// RequirementProvider commands declare preconditions checked before any
// data is merged.
type RequirementProvider interface {
	Requirements() []require.Requirement
}

// Interactor commands may prompt for missing values after the merge. It is
// only called in an interactive session.
type Interactor interface {
	Interact(ctx context.Context, in *Invocation) error
}

// PerformanceReporter decides whether stats are printed after Handle when
// the definition leaves it unset.
type PerformanceReporter interface {
	ShowPerformanceStats() bool
}
