package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/rileyhilliard/console/pkg/console"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// greetCommand shows the whole data pipeline on one small command: a
// prompted argument, defaults, casts, validation and arbitrary options.
type greetCommand struct{}

func (greetCommand) Definition() console.Definition {
	return console.Definition{
		Name:  "greet",
		Short: "Greet someone",
		Long: `Greet someone by name. The name is asked for when it is missing.

Undeclared options are accepted and listed after the greeting.

Examples:
  console greet ada
  console greet ada --greeting=Howdy --times=2 --shout
  console greet ada --team=core --role=lead`,
		Arguments: []console.Argument{
			{Name: "name", Description: "Who to greet"},
		},
		Options: []console.Option{
			{Name: "greeting", Shorthand: "g", Description: "Greeting word", Mode: console.ValueRequired, Default: "Hello"},
			{Name: "times", Shorthand: "n", Description: "How many times to greet (1-5)", Mode: console.ValueRequired, Default: "1"},
			{Name: "shout", Shorthand: "s", Description: "Greet in capitals", Mode: console.ValueNone},
		},
		ArbitraryOptions: true,
	}
}

func (greetCommand) Rules() validation.RuleSet {
	return validation.RuleSet{
		"name":  validation.Must("required|alpha_dash|min:2"),
		"times": validation.Must("integer|between:1,5"),
	}
}

func (greetCommand) Transformers() transform.Map {
	return transform.Map{
		"name":  transform.Casts(transform.CastTrim, transform.CastUcfirst),
		"times": transform.Casts(transform.CastInt),
	}
}

func (greetCommand) Interact(ctx context.Context, in *console.Invocation) error {
	_, err := in.Ask(ctx, "name", console.Label("your name"))
	return err
}

func (greetCommand) Handle(ctx context.Context, in *console.Invocation) (int, error) {
	line := fmt.Sprintf("%s, %s!", in.String("greeting"), in.String("name"))
	if in.Bool("shout") {
		line = strings.ToUpper(line)
	}
	for range in.Int("times") {
		in.Info(line)
	}

	extra := in.Arbitrary()
	if extra.Len() == 0 {
		return 0, nil
	}
	keys := extra.Keys()
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, formatValue(extra.Value(key))})
	}
	in.Table([]string{"Option", "Value"}, rows)
	return 0, nil
}

// formatValue renders an option value for a table cell.
func formatValue(v any) string {
	if values, ok := v.([]string); ok {
		return strings.Join(values, ", ")
	}
	return cast.ToString(v)
}
