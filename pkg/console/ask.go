package console

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// askHint is shown next to every prompt.
const askHint = "ctrl-c to exit"

type askConfig struct {
	confirm    bool
	secret     bool
	label      string
	rules      []validation.Rule
	messages   map[string]string
	attributes map[string]string
	before     transform.Chain
	after      transform.Chain
}

// AskOption configures Invocation.Ask.
type AskOption func(*askConfig)

// Confirm asks a second time until both answers match.
func Confirm() AskOption {
	return func(c *askConfig) { c.confirm = true }
}

// Secret hides the answer while it is typed.
func Secret() AskOption {
	return func(c *askConfig) { c.secret = true }
}

// Label replaces the name shown in the prompt.
func Label(label string) AskOption {
	return func(c *askConfig) { c.label = label }
}

// Rules validates the answer.
func Rules(rules ...validation.Rule) AskOption {
	return func(c *askConfig) { c.rules = append(c.rules, rules...) }
}

// Messages overrides validation messages for the answer.
func Messages(m map[string]string) AskOption {
	return func(c *askConfig) { c.messages = m }
}

// Attributes supplies :attribute replacements for the answer's messages.
func Attributes(a map[string]string) AskOption {
	return func(c *askConfig) { c.attributes = a }
}

// Transformers rewrite the answer before it is validated.
func Transformers(chain ...transform.Transformer) AskOption {
	return func(c *askConfig) { c.before = append(c.before, chain...) }
}

// TransformersAfterValidation rewrite the answer once it is valid.
func TransformersAfterValidation(chain ...transform.Transformer) AskOption {
	return func(c *askConfig) { c.after = append(c.after, chain...) }
}

// Ask returns the value of name, prompting for it when the data has none.
//
// An answer is transformed, validated against the ask's own rules and
// transformed again before it is stored under name. With Confirm the
// prompt repeats until a second answer matches the first. Validation
// failures print one line per problem and return an *Exit.
func (in *Invocation) Ask(ctx context.Context, name string, opts ...AskOption) (any, error) {
	if v, ok := in.data.Get(name); ok && !validation.IsEmpty(v) {
		return v, nil
	}

	cfg := askConfig{label: naturalName(name)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !in.settings.Prompt.Interactive {
		return nil, Fail(fmt.Sprintf("No value was given for %s.", cfg.label))
	}

	in.console.Line(ui.LevelInput, "Enter "+cfg.label+":")
	answer, err := in.read(ctx, cfg.secret)
	if err != nil {
		return nil, err
	}

	value, err := transform.Apply(answer, cfg.before)
	if err != nil {
		return nil, Fail(fmt.Sprintf("The %s is invalid: %v.", cfg.label, err))
	}

	if len(cfg.rules) > 0 {
		errs := validation.First(in.kernel.validator.Validate(
			map[string]any{name: value},
			validation.RuleSet{name: cfg.rules},
			cfg.messages, cfg.attributes,
		))
		if len(errs) > 0 {
			for _, e := range errs {
				in.console.Line(ui.LevelError, validation.Format(e.Message, cfg.label, ""))
			}
			return nil, &Exit{Status: 1}
		}
	}

	value, err = transform.Apply(value, cfg.after)
	if err != nil {
		return nil, Fail(fmt.Sprintf("The %s is invalid: %v.", cfg.label, err))
	}

	if cfg.confirm {
		in.console.Line(ui.LevelConfirm, "Confirm "+cfg.label+":")
		for {
			again, err := in.read(ctx, cfg.secret)
			if err != nil {
				return nil, err
			}
			if again == answer {
				break
			}
			in.console.Line(ui.LevelConfirmFailed, "Try "+cfg.label+" confirmation again")
		}
	}

	in.data.Set(name, value)
	return value, nil
}

func (in *Invocation) read(ctx context.Context, secret bool) (string, error) {
	answer, err := in.prompter.Prompt(ctx, askHint, secret)
	switch {
	case stderrors.Is(err, ErrAborted):
		return "", &Exit{Status: 130}
	case err != nil:
		return "", errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read input",
			"Pass the value as an argument or option instead.")
	}
	return answer, nil
}

// naturalName turns "dooms-day" or "dooms_day" into "dooms day".
func naturalName(name string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}
