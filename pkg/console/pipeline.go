package console

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/options"
	"github.com/rileyhilliard/console/pkg/require"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

type phase struct {
	name string
	run  func(ctx context.Context, in *Invocation) outcome
}

// phases are run in this order; each assumes the ones before it ran.
func (k *Kernel) phases() []phase {
	return []phase{
		{"initialize", k.initialize},
		{"requirements", k.checkRequirements},
		{"merge", k.merge},
		{"interact", k.interact},
		{"transform", k.transformBefore},
		{"validate", k.validate},
		{"transform after validation", k.transformAfter},
		{"partition", k.partition},
	}
}

// initialize discovers undeclared options, registers them next to the
// declared ones and binds the tokens against the extended set. Undeclared
// options keep the values options.Parse resolved; pflag only sees the rest.
func (k *Kernel) initialize(ctx context.Context, in *Invocation) outcome {
	fs := in.def.FlagSet()
	tokens := in.tokens

	if in.def.ArbitraryOptions {
		if bad := malformedOption(tokens); bad != "" {
			return halt(Fail(fmt.Sprintf("The %q option is malformed.", bad)))
		}
		parsed, err := options.Parse(tokens)
		if err != nil {
			return fault(err)
		}
		accepted := make(map[string]bool)
		for _, name := range sightingOrder(tokens) {
			p, ok := parsed[name]
			if !ok || name == helpFlag || fs.Lookup(name) != nil {
				continue
			}
			extra := Option{Name: name, Mode: ModeFor(p.Arity)}
			extra.register(fs)
			in.extra = append(in.extra, extra)
			in.arbitrary.Set(name, p.Value)
			accepted[name] = true
			k.log.Debug("%s: accepting --%s (%s)", in.def.Name, name, p.Arity)
		}
		tokens = withoutOptions(tokens, accepted)
	}

	if err := fs.Parse(tokens); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return fault(err)
		}
		return fault(errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("Cannot parse options for %s", in.def.Name),
			"Run with --help to see the accepted options."))
	}
	in.flags = fs

	args, problem := in.def.bindArguments(fs.Args())
	if problem != "" {
		return halt(Fail(problem))
	}
	in.args = args
	return proceed()
}

// helpFlag is left to pflag, which answers it with ErrHelp unless the
// command declares an option of that name.
const helpFlag = "help"

// sightingOrder lists --option names in the order they first appear.
func sightingOrder(tokens []string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if tok == "--" {
			break
		}
		name, _, _, ok := options.Split(tok)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// withoutOptions drops every sighting of the named options before "--".
func withoutOptions(tokens []string, names map[string]bool) []string {
	if len(names) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if tok == "--" {
			return append(out, tokens[i:]...)
		}
		if name, _, _, ok := options.Split(tok); ok && names[name] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// malformedOption returns the first long-option token that has no usable
// name, such as ---x or --=x.
func malformedOption(tokens []string) string {
	for _, tok := range tokens {
		if tok == "--" {
			return ""
		}
		if strings.HasPrefix(tok, "--") {
			if _, _, _, ok := options.Split(tok); !ok {
				return tok
			}
		}
	}
	return ""
}

func (k *Kernel) checkRequirements(ctx context.Context, in *Invocation) outcome {
	p, ok := in.cmd.(RequirementProvider)
	if !ok {
		return proceed()
	}
	results := require.CheckAll(ctx, p.Requirements(), k.cache)
	if failed, ok := require.FirstFailure(results); ok {
		k.log.Debug("%s: requirement %s failed", in.def.Name, failed.Name)
		return halt(Fail(failed.Message))
	}
	return proceed()
}

// merge combines arguments, declared options and arbitrary options into one
// ordered mapping, dropping absent values.
func (k *Kernel) merge(ctx context.Context, in *Invocation) outcome {
	data := NewData()
	for _, key := range in.args.Keys() {
		data.Set(key, in.args.Value(key))
	}
	for _, o := range in.def.Options {
		if v, ok := o.value(in.flags); ok {
			data.Set(o.Name, v)
		}
	}
	for _, o := range in.extra {
		if v, ok := in.arbitrary.Get(o.Name); ok {
			data.Set(o.Name, v)
		}
	}

	in.data = data.Filter(func(_ string, v any) bool { return v != nil })

	if in.def.CoerceDates {
		for _, key := range in.data.Keys() {
			if !strings.Contains(strings.ToLower(key), "date") {
				continue
			}
			v := in.data.Value(key)
			if transform.IsEmpty(v) {
				continue
			}
			if _, ok := v.(string); !ok {
				continue
			}
			t, err := transform.ParseDate(v)
			if err != nil {
				name, typ := in.display(key)
				return halt(Fail(validation.Format("The :name :type is not a valid date.", name, typ)))
			}
			in.data.Set(key, t)
		}
	}
	return proceed()
}

func (k *Kernel) interact(ctx context.Context, in *Invocation) outcome {
	i, ok := in.cmd.(Interactor)
	if !ok || !in.interactive {
		return proceed()
	}
	if err := i.Interact(ctx, in); err != nil {
		var exit *Exit
		if stderrors.As(err, &exit) {
			return halt(exit)
		}
		return fault(err)
	}
	return proceed()
}

func (k *Kernel) transformBefore(ctx context.Context, in *Invocation) outcome {
	t, ok := in.cmd.(Transformable)
	if !ok {
		return proceed()
	}
	return in.transformData(t.Transformers())
}

func (k *Kernel) transformAfter(ctx context.Context, in *Invocation) outcome {
	t, ok := in.cmd.(PostValidationTransformable)
	if !ok {
		return proceed()
	}
	return in.transformData(t.TransformersAfterValidation())
}

// validate prints the first failure of every invalid field, in data order,
// and stops with status 1.
func (k *Kernel) validate(ctx context.Context, in *Invocation) outcome {
	v, ok := in.cmd.(Validatable)
	if !ok {
		return proceed()
	}
	var messages, attributes map[string]string
	if m, ok := in.cmd.(Messager); ok {
		messages = m.Messages()
	}
	if a, ok := in.cmd.(Attributer); ok {
		attributes = a.Attributes()
	}

	errs := validation.First(k.validator.Validate(in.data.Map(), v.Rules(), messages, attributes))
	if len(errs) == 0 {
		return proceed()
	}

	order := make(map[string]int)
	for i, key := range in.data.Keys() {
		order[key] = i + 1
	}
	slices.SortStableFunc(errs, func(a, b validation.FieldError) int {
		return cmp.Compare(position(order, a.Field), position(order, b.Field))
	})

	for _, e := range errs {
		name, typ := in.display(e.Field)
		in.console.Line(ui.LevelError, validation.Format(e.Message, name, typ))
	}
	return halt(&Exit{Status: 1})
}

// position sorts fields missing from the data after the present ones.
func position(order map[string]int, field string) int {
	if p, ok := order[field]; ok {
		return p
	}
	return len(order) + 1
}

// partition moves arbitrary options out of the declared data, keeping
// whatever the transformers made of them.
func (k *Kernel) partition(ctx context.Context, in *Invocation) outcome {
	for _, o := range in.extra {
		if v, ok := in.data.Get(o.Name); ok {
			in.arbitrary.Set(o.Name, v)
			in.data.Delete(o.Name)
		}
	}
	return proceed()
}

func (k *Kernel) dispatch(ctx context.Context, in *Invocation) outcome {
	start := time.Now()
	status, err := in.cmd.Handle(ctx, in)
	elapsed := time.Since(start)

	var exit *Exit
	switch {
	case stderrors.As(err, &exit):
		return halt(exit)
	case err != nil:
		return fault(err)
	}

	if k.showStats(in) {
		in.console.Println("")
		in.console.Line(ui.LevelPerformance, performanceLine(elapsed))
	}
	return halt(&Exit{Status: status})
}

func performanceLine(elapsed time.Duration) string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ms := float64(elapsed.Microseconds()) / 1000
	return fmt.Sprintf("Memory: %s|Execution Time: %.2fms", humanize.Bytes(m.HeapAlloc), ms)
}
