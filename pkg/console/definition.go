package console

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/pkg/options"
)

// ValueMode is how many values an option takes.
type ValueMode int

const (
	// ValueNone is a boolean flag.
	ValueNone ValueMode = iota
	// ValueOptional takes a value that may be empty (--name=).
	ValueOptional
	// ValueRequired takes exactly one value.
	ValueRequired
	// ValueMulti collects every value of a repeated flag.
	ValueMulti
)

// ModeFor maps a discovered option's arity to the mode it is registered with.
func ModeFor(a options.Arity) ValueMode {
	switch a {
	case options.ArityNone:
		return ValueNone
	case options.ArityOptional:
		return ValueOptional
	case options.ArityRequiredMulti:
		return ValueMulti
	default:
		return ValueRequired
	}
}

// Argument is a positional argument.
type Argument struct {
	Name        string
	Description string
	Required    bool
	// Variadic collects the remaining positionals into a []string. Only the
	// last argument may be variadic.
	Variadic bool
	Default  any
}

// Option is a declared --flag.
type Option struct {
	Name        string
	Shorthand   string
	Description string
	Mode        ValueMode
	Default     any
}

// Definition is a command's static signature.
type Definition struct {
	Name  string
	Short string
	Long  string

	Arguments []Argument
	Options   []Option

	// ArbitraryOptions accepts --flags that were never declared. They are
	// registered on the fly and end up in Invocation.Arbitrary.
	ArbitraryOptions bool

	// CoerceDates parses every string value whose key contains "date" into
	// a time.Time before transformers run.
	CoerceDates bool

	// PerformanceStats prints memory and timing after the handler. Nil
	// defers to the command (PerformanceReporter) and then to settings.
	PerformanceStats *bool

	// Settings are dotted-key overrides applied to the kernel's settings for
	// this command only, e.g. {"tasks.concurrent": false}.
	Settings map[string]any
}

// HasOption reports whether name is a declared option.
func (d Definition) HasOption(name string) bool {
	for _, o := range d.Options {
		if o.Name == name {
			return true
		}
	}
	return false
}

// HasArgument reports whether name is a declared argument.
func (d Definition) HasArgument(name string) bool {
	for _, a := range d.Arguments {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the signature for mistakes that would make binding
// ambiguous.
func (d Definition) Validate() error {
	seen := make(map[string]bool)
	optional := false
	for i, a := range d.Arguments {
		if a.Name == "" {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Argument %d of %q has no name", i, d.Name), "")
		}
		if seen[a.Name] {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Argument %q is declared twice", a.Name), "")
		}
		seen[a.Name] = true
		if a.Variadic && i != len(d.Arguments)-1 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Argument %q is variadic but not last", a.Name),
				"Move the variadic argument to the end of the definition.")
		}
		if a.Required && optional {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Required argument %q follows an optional one", a.Name),
				"Declare required arguments first.")
		}
		optional = optional || !a.Required
	}

	for _, o := range d.Options {
		if o.Name == "" || strings.HasPrefix(o.Name, "-") {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Invalid option name %q", o.Name), "Option names are given without dashes.")
		}
		if seen[o.Name] {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Option %q clashes with another field", o.Name), "")
		}
		seen[o.Name] = true
		if len(o.Shorthand) > 1 {
			return errors.New(errors.ErrConfig, fmt.Sprintf("Shorthand %q of --%s is longer than one letter", o.Shorthand, o.Name), "")
		}
	}
	return nil
}

// Use renders the cobra usage line: "name <required> [optional] [rest...]".
func (d Definition) Use() string {
	parts := []string{d.Name}
	for _, a := range d.Arguments {
		name := a.Name
		if a.Variadic {
			name += "..."
		}
		if a.Required {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// FlagSet builds a pflag set holding the declared options.
func (d Definition) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(d.Name, pflag.ContinueOnError)
	fs.SortFlags = false
	for _, o := range d.Options {
		o.register(fs)
	}
	return fs
}

func (o Option) register(fs *pflag.FlagSet) {
	switch o.Mode {
	case ValueNone:
		fs.BoolP(o.Name, o.Shorthand, cast.ToBool(o.Default), o.Description)
	case ValueMulti:
		fs.StringArrayP(o.Name, o.Shorthand, cast.ToStringSlice(o.Default), o.Description)
	default:
		fs.StringP(o.Name, o.Shorthand, cast.ToString(o.Default), o.Description)
	}
}

// value reads the option back after parsing. Options that were not given
// resolve to their default; valued options without one are absent.
func (o Option) value(fs *pflag.FlagSet) (any, bool) {
	f := fs.Lookup(o.Name)
	if f == nil {
		return nil, false
	}
	if !f.Changed {
		switch {
		case o.Default != nil:
			return o.Default, true
		case o.Mode == ValueNone:
			return false, true
		}
		return nil, false
	}

	switch o.Mode {
	case ValueNone:
		v, err := fs.GetBool(o.Name)
		return v, err == nil
	case ValueMulti:
		v, err := fs.GetStringArray(o.Name)
		return v, err == nil
	}
	v, err := fs.GetString(o.Name)
	return v, err == nil
}

// bindArguments assigns positionals to declared arguments in order.
// Arguments not given fall back to their default or are left out.
func (d Definition) bindArguments(args []string) (*Data, string) {
	data := NewData()
	i := 0
	for _, a := range d.Arguments {
		switch {
		case a.Variadic && i < len(args):
			data.Set(a.Name, append([]string(nil), args[i:]...))
			i = len(args)
		case i < len(args):
			data.Set(a.Name, args[i])
			i++
		case a.Required:
			return nil, fmt.Sprintf("Not enough arguments (missing: %q).", missing(d.Arguments, a.Name))
		case a.Default != nil:
			data.Set(a.Name, a.Default)
		}
	}

	if i < len(args) {
		if len(d.Arguments) == 0 {
			return nil, fmt.Sprintf("No arguments expected, got %q.", args[i])
		}
		names := make([]string, len(d.Arguments))
		for j, a := range d.Arguments {
			names[j] = fmt.Sprintf("%q", a.Name)
		}
		return nil, fmt.Sprintf("Too many arguments, expected arguments %s.", strings.Join(names, " "))
	}
	return data, ""
}

// missing lists the required arguments from the first missing one on.
func missing(args []Argument, from string) string {
	var names []string
	started := false
	for _, a := range args {
		if a.Name == from {
			started = true
		}
		if started && a.Required {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}
