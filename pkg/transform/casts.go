package transform

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Named casts accepted by Cast.
const (
	CastInt     = "int"
	CastFloat   = "float"
	CastBool    = "bool"
	CastString  = "string"
	CastStrings = "strings"
	CastDate    = "date"
	CastTrim    = "trim"
	CastUpper   = "upper"
	CastLower   = "lower"
	CastUcfirst = "ucfirst"
)

var casts = map[string]Func{
	CastInt: func(v any) (any, error) {
		return cast.ToIntE(v)
	},
	"integer": func(v any) (any, error) {
		return cast.ToIntE(v)
	},
	CastFloat: func(v any) (any, error) {
		return cast.ToFloat64E(v)
	},
	CastBool: func(v any) (any, error) {
		return cast.ToBoolE(v)
	},
	"boolean": func(v any) (any, error) {
		return cast.ToBoolE(v)
	},
	CastString: func(v any) (any, error) {
		return cast.ToStringE(v)
	},
	CastStrings: func(v any) (any, error) {
		return cast.ToStringSliceE(v)
	},
	CastDate: func(v any) (any, error) {
		return ParseDate(v)
	},
	CastTrim:    stringCast(strings.TrimSpace),
	CastUpper:   stringCast(strings.ToUpper),
	CastLower:   stringCast(strings.ToLower),
	CastUcfirst: stringCast(ucfirst),
}

// Cast returns the named cast as a Transformer. Unknown names produce a
// transformer that always fails, so typos surface on first use.
func Cast(name string) Transformer {
	if fn, ok := casts[strings.ToLower(name)]; ok {
		return fn
	}
	return Func(func(any) (any, error) {
		return nil, fmt.Errorf("unknown cast %q", name)
	})
}

// Casts builds a chain from cast names; "?" inserts an Optional marker.
func Casts(names ...string) Chain {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		if name == "?" {
			chain = append(chain, Optional())
			continue
		}
		chain = append(chain, Cast(name))
	}
	return chain
}

func stringCast(fn func(string) string) Func {
	return func(v any) (any, error) {
		if list, ok := v.([]string); ok {
			out := make([]string, len(list))
			for i, s := range list {
				out[i] = fn(s)
			}
			return out, nil
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return fn(s), nil
	}
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// extraDateLayouts covers common human formats cast doesn't parse.
var extraDateLayouts = []string{
	"01/02/2006",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate converts strings, unix timestamps and times into a time.Time.
func ParseDate(v any) (time.Time, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, fmt.Errorf("empty date")
		}
		if t, err := cast.ToTimeE(s); err == nil {
			return t, nil
		}
		for _, layout := range extraDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%q is not a recognized date", s)
	}
	return cast.ToTimeE(v)
}
