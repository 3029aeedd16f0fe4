package cli

import (
	"context"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/pkg/console"
	"github.com/rileyhilliard/console/pkg/files"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// secretMarkers flag variables whose values are masked unless --reveal is given.
var secretMarkers = []string{"SECRET", "TOKEN", "PASSWORD", "KEY"}

// envCommand prints the variables an env file defines.
type envCommand struct{}

func (envCommand) Definition() console.Definition {
	return console.Definition{
		Name:  "env",
		Short: "Show the variables of an env file",
		Long: `Parse an env file and print its variables without touching the
environment. Values of keys that look like secrets are masked.

Examples:
  console env
  console env config/.env.production --format=json
  console env .env --reveal`,
		Arguments: []console.Argument{
			{Name: "path", Description: "Env file to read", Default: ".env"},
		},
		Options: []console.Option{
			{Name: "format", Shorthand: "f", Description: "Output format: table, json or yaml", Mode: console.ValueRequired, Default: "table"},
			{Name: "reveal", Description: "Print secret values in full", Mode: console.ValueNone},
		},
	}
}

func (envCommand) Rules() validation.RuleSet {
	return validation.RuleSet{
		"path":   validation.Must("required|file_exists"),
		"format": validation.Must("required|in:table,json,yaml"),
	}
}

func (envCommand) Transformers() transform.Map {
	return transform.Map{
		"format": transform.Casts(transform.CastTrim, transform.CastLower),
	}
}

func (envCommand) Handle(ctx context.Context, in *console.Invocation) (int, error) {
	vars, err := files.EnvFileVariables(in.String("path"))
	if err != nil {
		return 0, console.Fail(err.Error())
	}
	if !in.Bool("reveal") {
		for key, value := range vars {
			if isSecret(key) {
				vars[key] = mask(value)
			}
		}
	}

	switch in.String("format") {
	case "json":
		raw, err := json.MarshalIndent(vars, "", "  ")
		if err != nil {
			return 1, errors.WrapWithCode(err, errors.ErrExec, "Cannot encode variables", "")
		}
		in.Println(string(raw))
	case "yaml":
		raw, err := yaml.Marshal(vars)
		if err != nil {
			return 1, errors.WrapWithCode(err, errors.ErrExec, "Cannot encode variables", "")
		}
		in.Println(strings.TrimRight(string(raw), "\n"))
	default:
		keys := make([]string, 0, len(vars))
		for key := range vars {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		rows := make([][]string, 0, len(keys))
		for _, key := range keys {
			rows = append(rows, []string{key, vars[key]})
		}
		in.Table([]string{"Variable", "Value"}, rows)
	}
	return 0, nil
}

func isSecret(key string) bool {
	upper := strings.ToUpper(key)
	for _, marker := range secretMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// mask keeps the first two characters of values long enough to hide.
func mask(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:2] + strings.Repeat("*", len(value)-2)
}
