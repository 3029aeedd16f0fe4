package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/rileyhilliard/console/pkg/transform"
)

// RuleFunc adapts a closure to a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(value any, field Field) string
}

// Name implements Rule.
func (r RuleFunc) Name() string { return r.RuleName }

// Validate implements Rule.
func (r RuleFunc) Validate(value any, field Field) string { return r.Fn(value, field) }

// Check builds a Rule from a predicate and a failure message.
func Check(name, message string, ok func(value any) bool) Rule {
	return RuleFunc{RuleName: name, Fn: func(value any, _ Field) string {
		if ok(value) {
			return ""
		}
		return message
	}}
}

// Required fails on nil, blank strings and empty collections.
func Required() Rule {
	return Check("required", "The :name :type is required.", func(v any) bool {
		return !IsEmpty(v)
	})
}

// String fails for anything that isn't a string.
func String() Rule {
	return Check("string", "The :name :type must be a string.", func(v any) bool {
		_, ok := v.(string)
		return ok
	})
}

// Numeric accepts numbers and numeric strings.
func Numeric() Rule {
	return Check("numeric", "The :name :type must be a number.", isNumeric)
}

// Integer accepts integers and base-10 integer strings.
func Integer() Rule {
	return Check("integer", "The :name :type must be an integer.", func(v any) bool {
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case string:
			_, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			return err == nil
		}
		return false
	})
}

// Boolean accepts bools and the strings cast understands ("1", "false").
func Boolean() Rule {
	return Check("boolean", "The :name :type must be true or false.", func(v any) bool {
		switch v.(type) {
		case bool, string, int:
			_, err := cast.ToBoolE(v)
			return err == nil
		}
		return false
	})
}

// Date accepts time values and strings transform.ParseDate can read.
func Date() Rule {
	return Check("date", "The :name :type is not a valid date.", func(v any) bool {
		switch d := v.(type) {
		case time.Time:
			return !d.IsZero()
		case string:
			_, err := transform.ParseDate(d)
			return err == nil
		}
		return false
	})
}

// Alpha accepts letters only.
func Alpha() Rule {
	return Check("alpha", "The :name :type may only contain letters.", runesMatch(unicode.IsLetter))
}

// AlphaNum accepts letters and digits.
func AlphaNum() Rule {
	return Check("alpha_num", "The :name :type may only contain letters and numbers.", runesMatch(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}))
}

// AlphaDash accepts letters, digits, dashes and underscores.
func AlphaDash() Rule {
	return Check("alpha_dash", "The :name :type may only contain letters, numbers, dashes and underscores.", runesMatch(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
	}))
}

// Min is the lower bound on size: the value for numbers, the character
// count for strings, the item count for lists.
func Min(n float64) Rule {
	return sizeRule{name: "min", lo: n, hasLo: true}
}

// Max is the upper bound on size.
func Max(n float64) Rule {
	return sizeRule{name: "max", hi: n, hasHi: true}
}

// Between bounds size on both ends, inclusive.
func Between(lo, hi float64) Rule {
	return sizeRule{name: "between", lo: lo, hi: hi, hasLo: true, hasHi: true}
}

type sizeRule struct {
	name         string
	lo, hi       float64
	hasLo, hasHi bool
}

func (r sizeRule) Name() string { return r.name }

func (r sizeRule) Validate(value any, field Field) string {
	size, kind, ok := sizeOf(value, field.Numeric)
	if !ok {
		return ""
	}
	if (r.hasLo && size < r.lo) || (r.hasHi && size > r.hi) {
		return r.message(kind)
	}
	return ""
}

func (r sizeRule) message(kind string) string {
	lo, hi := formatNumber(r.lo), formatNumber(r.hi)
	suffix := ""
	switch kind {
	case "string":
		suffix = " characters"
	case "list":
		suffix = " items"
	}

	switch r.name {
	case "min":
		if kind == "list" {
			return "The :name :type must have at least " + lo + suffix + "."
		}
		return "The :name :type must be at least " + lo + suffix + "."
	case "max":
		if kind == "list" {
			return "The :name :type may not have more than " + hi + suffix + "."
		}
		return "The :name :type may not be greater than " + hi + suffix + "."
	default:
		if kind == "list" {
			return "The :name :type must have between " + lo + " and " + hi + suffix + "."
		}
		return "The :name :type must be between " + lo + " and " + hi + suffix + "."
	}
}

func sizeOf(value any, numeric bool) (float64, string, bool) {
	switch v := value.(type) {
	case string:
		if numeric {
			if f, err := cast.ToFloat64E(strings.TrimSpace(v)); err == nil {
				return f, "number", true
			}
		}
		return float64(utf8.RuneCountInString(v)), "string", true
	case []string:
		return float64(len(v)), "list", true
	case []any:
		return float64(len(v)), "list", true
	case bool:
		return 0, "", false
	}
	if isNumeric(value) {
		f, err := cast.ToFloat64E(value)
		return f, "number", err == nil
	}
	return 0, "", false
}

// In requires the value to be one of values.
func In(values ...string) Rule {
	return Check("in", "The selected :name :type is invalid.", func(v any) bool {
		return slices.Contains(values, cast.ToString(v))
	})
}

// NotIn rejects the listed values.
func NotIn(values ...string) Rule {
	return Check("not_in", "The selected :name :type is invalid.", func(v any) bool {
		return !slices.Contains(values, cast.ToString(v))
	})
}

// StartsWith requires one of the given prefixes.
func StartsWith(prefixes ...string) Rule {
	msg := "The :name :type must start with one of the following: " + strings.Join(prefixes, ", ") + "."
	return Check("starts_with", msg, func(v any) bool {
		s := cast.ToString(v)
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return true
			}
		}
		return false
	})
}

// EndsWith requires one of the given suffixes.
func EndsWith(suffixes ...string) Rule {
	msg := "The :name :type must end with one of the following: " + strings.Join(suffixes, ", ") + "."
	return Check("ends_with", msg, func(v any) bool {
		s := cast.ToString(v)
		for _, p := range suffixes {
			if strings.HasSuffix(s, p) {
				return true
			}
		}
		return false
	})
}

// Regex matches the string form of the value. Slash delimiters
// ("/^[a-z]+$/") are accepted and stripped.
func Regex(pattern string) (Rule, error) {
	if len(pattern) >= 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		pattern = pattern[1 : len(pattern)-1]
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex rule: %w", err)
	}
	return Check("regex", "The :name :type format is invalid.", func(v any) bool {
		return re.MatchString(cast.ToString(v))
	}), nil
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	}
	return false
}

func runesMatch(ok func(rune) bool) func(any) bool {
	return func(v any) bool {
		s, isString := v.(string)
		if !isString {
			return false
		}
		for _, r := range s {
			if !ok(r) {
				return false
			}
		}
		return true
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
