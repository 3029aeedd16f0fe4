// Package require provides pre-flight requirement checks for commands.
// It verifies that required tools and conditions are in place before a
// command's handler runs.
package require

import (
	"context"
	"regexp"
)

// LocalScope is the cache scope for checks against this machine.
const LocalScope = "local"

// validToolName matches safe tool names: alphanumeric, hyphens, underscores, and periods.
// Examples: go, python3, nvidia-smi, python3.10, g++
var validToolName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

// ValidateToolName checks if a tool name is safe to look up.
// Returns true if the name contains only safe characters.
func ValidateToolName(name string) bool {
	return validToolName.MatchString(name)
}

// CheckResult represents the result of checking a single requirement.
type CheckResult struct {
	// Name is the tool/requirement name.
	Name string
	// Satisfied is true if the requirement holds.
	Satisfied bool
	// Path is where the tool was found, for binary requirements.
	Path string
	// Message explains an unsatisfied requirement to the user.
	Message string
}

// Requirement is one precondition.
type Requirement struct {
	Name string
	// Cacheable results are stored per scope for the session.
	Cacheable bool
	check     func(ctx context.Context) CheckResult
}

// Check runs the requirement.
func (r Requirement) Check(ctx context.Context) CheckResult {
	if r.check == nil {
		return CheckResult{Name: r.Name, Satisfied: true}
	}
	return r.check(ctx)
}
