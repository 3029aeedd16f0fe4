// Package options discovers command-line options that a command never
// declared. It is deliberately lenient: anything shaped like --name or
// --name=value is accepted, and everything else is left for positional
// argument handling.
package options

import (
	"fmt"
	"regexp"
)

// Arity describes how many values an option accepts.
type Arity int

const (
	// ArityNone is a bare boolean flag (--verbose).
	ArityNone Arity = iota
	// ArityOptional accepts a value but may be given without one (--name=).
	ArityOptional
	// ArityRequired needs exactly one value (--name=value).
	ArityRequired
	// ArityRequiredMulti collects every value of a repeated flag.
	ArityRequiredMulti
)

// String returns a human-readable arity name.
func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOptional:
		return "optional"
	case ArityRequired:
		return "required"
	case ArityRequiredMulti:
		return "required-multi"
	default:
		return "unknown"
	}
}

// ParsedOption is one option discovered in the token stream.
//
// Value holds a string (ArityRequired), true (ArityNone), "" (ArityOptional)
// or a []string in sighting order (ArityRequiredMulti).
type ParsedOption struct {
	Name  string
	Value any
	Arity Arity
}

// Values returns the option's values as a slice. Bare flags have none.
func (p ParsedOption) Values() []string {
	switch v := p.Value.(type) {
	case string:
		return []string{v}
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return nil
	}
}

// DuplicateOptionError is returned when a flag is seen again without a value.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("The '%s' option has already been provided.", e.Name)
}

// optionToken matches --name, --name= and --name=value. Names can't start
// with a dash or an equals sign.
var optionToken = regexp.MustCompile(`^--([^=-][^=]*)(=)?(.*)$`)

// endOfOptions stops option scanning, as with most getopt-style parsers.
const endOfOptions = "--"

// Split breaks a token into its option name, whether an equals sign was
// present, and the value after it. ok is false for non-option tokens.
func Split(token string) (name string, hasEquals bool, value string, ok bool) {
	match := optionToken.FindStringSubmatch(token)
	if match == nil {
		return "", false, "", false
	}
	return match[1], match[2] == "=", match[3], true
}

// Parse scans tokens in order and returns every --option it finds, keyed by
// name. A later sighting with a value (--x=1 or --x=) promotes the option to
// ArityRequiredMulti and collects the valued sightings in order; a later
// bare sighting is a DuplicateOptionError.
func Parse(tokens []string) (map[string]ParsedOption, error) {
	parsed := make(map[string]ParsedOption)

	for _, token := range tokens {
		if token == endOfOptions {
			break
		}

		name, hasEquals, value, ok := Split(token)
		if !ok {
			continue
		}

		existing, seen := parsed[name]
		hasValue := value != "" || hasEquals

		switch {
		case !seen && value != "":
			parsed[name] = ParsedOption{Name: name, Value: value, Arity: ArityRequired}
		case !seen && hasEquals:
			parsed[name] = ParsedOption{Name: name, Value: "", Arity: ArityOptional}
		case !seen:
			parsed[name] = ParsedOption{Name: name, Value: true, Arity: ArityNone}
		case hasValue:
			// A bare first sighting carries no value to collect.
			values := append(existing.Values(), value)
			parsed[name] = ParsedOption{Name: name, Value: values, Arity: ArityRequiredMulti}
		default:
			return nil, &DuplicateOptionError{Name: name}
		}
	}

	return parsed, nil
}
