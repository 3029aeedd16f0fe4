package validation

import (
	"fmt"
	"strconv"
	"strings"
)

type factory func(params []string) (Rule, error)

var factories = map[string]factory{
	"required":   noParams(Required),
	"string":     noParams(String),
	"numeric":    noParams(Numeric),
	"integer":    noParams(Integer),
	"int":        noParams(Integer),
	"boolean":    noParams(Boolean),
	"bool":       noParams(Boolean),
	"date":       noParams(Date),
	"alpha":      noParams(Alpha),
	"alpha_num":  noParams(AlphaNum),
	"alpha_dash": noParams(AlphaDash),
	"min": func(p []string) (Rule, error) {
		n, err := floatParams("min", p, 1)
		if err != nil {
			return nil, err
		}
		return Min(n[0]), nil
	},
	"max": func(p []string) (Rule, error) {
		n, err := floatParams("max", p, 1)
		if err != nil {
			return nil, err
		}
		return Max(n[0]), nil
	},
	"between": func(p []string) (Rule, error) {
		n, err := floatParams("between", p, 2)
		if err != nil {
			return nil, err
		}
		return Between(n[0], n[1]), nil
	},
	"in":          listParams("in", In),
	"not_in":      listParams("not_in", NotIn),
	"starts_with": listParams("starts_with", StartsWith),
	"ends_with":   listParams("ends_with", EndsWith),
	"regex": func(p []string) (Rule, error) {
		if len(p) != 1 || p[0] == "" {
			return nil, fmt.Errorf("regex rule needs a pattern")
		}
		return Regex(p[0])
	},
	"file_exists":              noParams(func() Rule { return FileExists("") }),
	"file_must_exist":          noParams(func() Rule { return FileMustExist("") }),
	"file_must_not_exist":      noParams(func() Rule { return FileMustNotExist("") }),
	"directory_exists":         noParams(func() Rule { return DirectoryExists("") }),
	"is_directory":             noParams(func() Rule { return IsDirectory("") }),
	"directory_must_not_exist": noParams(func() Rule { return DirectoryMustNotExist("") }),
	"file_or_directory_exists": noParams(func() Rule { return FileOrDirectoryExists("") }),
	"readable":                 noParams(func() Rule { return Readable("") }),
	"writable":                 noParams(func() Rule { return Writable("") }),
	"executable":               noParams(func() Rule { return Executable("") }),
}

// Parse turns "required|min:4|date" into rules. Parameters follow a colon
// and are comma separated; a regex pattern is taken whole, but can't
// contain a pipe (use Regex for that).
func Parse(spec string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, raw, hasParams := strings.Cut(part, ":")
		name = strings.ToLower(strings.TrimSpace(name))

		var params []string
		if hasParams {
			if name == "regex" {
				params = []string{raw}
			} else {
				for _, p := range strings.Split(raw, ",") {
					params = append(params, strings.TrimSpace(p))
				}
			}
		}

		f, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown validation rule %q", name)
		}
		rule, err := f(params)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Must is Parse for statically known rule strings; it panics on error.
// Extra rules are appended after the parsed ones.
func Must(spec string, extra ...Rule) []Rule {
	rules, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return append(rules, extra...)
}

func noParams(fn func() Rule) factory {
	return func(p []string) (Rule, error) {
		return fn(), nil
	}
}

func floatParams(name string, p []string, want int) ([]float64, error) {
	if len(p) != want {
		return nil, fmt.Errorf("%s rule needs %d parameter(s), got %d", name, want, len(p))
	}
	out := make([]float64, want)
	for i, s := range p {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s rule parameter %q is not a number", name, s)
		}
		out[i] = f
	}
	return out, nil
}

func listParams(name string, fn func(values ...string) Rule) factory {
	return func(p []string) (Rule, error) {
		if len(p) == 0 {
			return nil, fmt.Errorf("%s rule needs at least one value", name)
		}
		return fn(p...), nil
	}
}
