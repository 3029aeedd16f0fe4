// Package transform rewrites named values through ordered chains of
// transformers. A chain is run before validation to coerce raw input, and a
// second, independent chain can run afterwards to build richer values once
// the input is known to be valid.
package transform

import (
	"fmt"
	"path"
	"sort"
)

// Transformer rewrites a single value.
type Transformer interface {
	Transform(value any) (any, error)
}

// Func adapts a fallible function to a Transformer.
type Func func(value any) (any, error)

// Transform implements Transformer.
func (f Func) Transform(value any) (any, error) {
	return f(value)
}

// Pure adapts an infallible function to a Transformer.
func Pure(fn func(value any) any) Transformer {
	return Func(func(value any) (any, error) {
		return fn(value), nil
	})
}

// Chain is an ordered list of transformers applied to one field.
type Chain []Transformer

// Map associates field names with chains. Keys may be exact names or
// path.Match style globs such as "*date*"; an exact key wins over globs.
type Map map[string]Chain

// For returns the chain registered for name, or nil when nothing matches.
// When several globs match, the lexically first pattern is used.
func (m Map) For(name string) Chain {
	if chain, ok := m[name]; ok {
		return chain
	}

	var patterns []string
	for key := range m {
		if isPattern(key) {
			patterns = append(patterns, key)
		}
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, name); ok {
			return m[pattern]
		}
	}
	return nil
}

func isPattern(key string) bool {
	for _, r := range key {
		switch r {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// Apply runs value through chain in order. An Optional marker stops the
// chain early when the value is empty.
func Apply(value any, chain Chain) (any, error) {
	current := value
	for i, t := range chain {
		if _, ok := t.(optional); ok {
			if IsEmpty(current) {
				return current, nil
			}
			continue
		}
		next, err := t.Transform(current)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		current = next
	}
	return current, nil
}

// optional is the marker returned by Optional.
type optional struct{}

func (optional) Transform(value any) (any, error) { return value, nil }

// Optional marks the rest of a chain as skipped for empty values, so casts
// like Cast("date") don't fail on absent input.
func Optional() Transformer {
	return optional{}
}

// IsEmpty reports whether a value carries no information: nil, "" or an
// empty slice or map.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
