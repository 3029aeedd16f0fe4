// Package validation checks named values against declarative rule sets.
//
// Rules are written either as pipe-separated strings ("required|min:4|date")
// parsed with Parse or Must, or as Rule values for things a string can't
// express (custom messages, closures, regular expressions containing pipes).
// Messages keep the :name and :type placeholders so the caller can render
// the field the way the user typed it ("--flag option", "path argument").
package validation

import (
	"sort"
	"strings"
)

// Rule checks one value.
type Rule interface {
	// Name identifies the rule in message overrides ("min", "file_exists").
	Name() string
	// Validate returns the failure message template, or "" when value passes.
	Validate(value any, field Field) string
}

// Field describes the value under validation.
type Field struct {
	Name string
	Data map[string]any
	// Numeric is set when the field's rules include numeric or integer, so
	// size rules compare values instead of string lengths.
	Numeric bool
}

// RuleSet maps field names to their rules, checked in order.
type RuleSet map[string][]Rule

// FieldError is one failed rule for one field.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Validator is the contract the command pipeline consumes.
type Validator interface {
	Validate(data map[string]any, rules RuleSet, messages, attributes map[string]string) []FieldError
}

// RuleValidator is the default Validator.
type RuleValidator struct{}

// New returns a RuleValidator.
func New() *RuleValidator {
	return &RuleValidator{}
}

// Validate runs every rule for every field. Errors are grouped by field name
// in sorted order, rules in declaration order within a field.
//
// Fields without a "required" rule are skipped when empty. messages may
// override a template by "field.rule" or by "rule"; attributes replace the
// :attribute placeholder.
func (v *RuleValidator) Validate(data map[string]any, rules RuleSet, messages, attributes map[string]string) []FieldError {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []FieldError
	for _, name := range names {
		list := rules[name]
		value := data[name]

		if !hasRule(list, "required") && IsEmpty(value) {
			continue
		}

		field := Field{
			Name:    name,
			Data:    data,
			Numeric: hasRule(list, "numeric") || hasRule(list, "integer"),
		}

		for _, rule := range list {
			msg := rule.Validate(value, field)
			if msg == "" {
				continue
			}
			if custom, ok := messages[name+"."+rule.Name()]; ok {
				msg = custom
			} else if custom, ok := messages[rule.Name()]; ok {
				msg = custom
			}
			attr := name
			if a, ok := attributes[name]; ok {
				attr = a
			}
			msg = strings.ReplaceAll(msg, ":attribute", attr)
			errs = append(errs, FieldError{Field: name, Rule: rule.Name(), Message: msg})
		}
	}
	return errs
}

// First returns the first error per field, preserving order.
func First(errs []FieldError) []FieldError {
	seen := make(map[string]bool, len(errs))
	var out []FieldError
	for _, e := range errs {
		if seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		out = append(out, e)
	}
	return out
}

// Format fills the :name and :type placeholders and collapses the double
// spaces an empty type leaves behind.
func Format(message, name, typ string) string {
	out := strings.NewReplacer(":name", name, ":type", typ).Replace(message)
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return strings.TrimSpace(out)
}

// IsEmpty reports whether a value counts as absent for the required rule.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func hasRule(rules []Rule, name string) bool {
	for _, r := range rules {
		if r.Name() == name {
			return true
		}
	}
	return false
}
