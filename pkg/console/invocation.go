package console

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/config"
	"github.com/rileyhilliard/console/pkg/task"
	"github.com/rileyhilliard/console/pkg/transform"
	"github.com/rileyhilliard/console/pkg/validation"
)

// Invocation is the live state of one command execution: the raw tokens,
// the declared and arbitrary data, and the output the command writes to.
type Invocation struct {
	kernel   *Kernel
	cmd      Command
	def      Definition
	settings *config.Settings
	tokens   []string

	flags *pflag.FlagSet
	args  *Data
	extra []Option

	data      *Data
	arbitrary *Data

	console     *ui.Console
	runner      *task.Runner
	prompter    Prompter
	interactive bool

	status int
}

// Tokens returns the raw tokens the command was executed with.
func (in *Invocation) Tokens() []string {
	return append([]string(nil), in.tokens...)
}

// Definition returns the command's signature, without arbitrary options.
func (in *Invocation) Definition() Definition { return in.def }

// Settings returns the settings in effect for this command.
func (in *Invocation) Settings() *config.Settings { return in.settings }

// Interactive reports whether the session may prompt.
func (in *Invocation) Interactive() bool { return in.interactive }

// Status is the exit status, set once execution ends.
func (in *Invocation) Status() int { return in.status }

// Data returns a copy of the declared data.
func (in *Invocation) Data() *Data { return in.data.Clone() }

// Arbitrary returns a copy of the data of undeclared options.
func (in *Invocation) Arbitrary() *Data { return in.arbitrary.Clone() }

// Get returns a declared value, or nil.
func (in *Invocation) Get(name string) any { return in.data.Value(name) }

// Argument returns a positional argument's value.
func (in *Invocation) Argument(name string) any {
	if !in.def.HasArgument(name) {
		return nil
	}
	return in.data.Value(name)
}

// Option returns a declared option's value.
func (in *Invocation) Option(name string) any {
	if !in.def.HasOption(name) {
		return nil
	}
	return in.data.Value(name)
}

// String returns a declared value as a string.
func (in *Invocation) String(name string) string { return cast.ToString(in.Get(name)) }

// Bool returns a declared value as a bool.
func (in *Invocation) Bool(name string) bool { return cast.ToBool(in.Get(name)) }

// Int returns a declared value as an int.
func (in *Invocation) Int(name string) int { return cast.ToInt(in.Get(name)) }

// Strings returns a declared value as a string slice.
func (in *Invocation) Strings(name string) []string { return cast.ToStringSlice(in.Get(name)) }

// Console exposes the styled output.
func (in *Invocation) Console() *ui.Console { return in.console }

// Info prints an INFO line.
func (in *Invocation) Info(message string) { in.console.Line(ui.LevelInfo, message) }

// Warn prints a WARN line.
func (in *Invocation) Warn(message string) { in.console.Line(ui.LevelWarn, message) }

// Error prints an ERROR line.
func (in *Invocation) Error(message string) { in.console.Line(ui.LevelError, message) }

// Debug prints a DEBUG line.
func (in *Invocation) Debug(message string) { in.console.Line(ui.LevelDebug, message) }

// Message prints a line with a custom title and color.
func (in *Invocation) Message(title string, color lipgloss.Color, message string) {
	in.console.Badge(title, color, message)
}

// Println prints a plain line.
func (in *Invocation) Println(s string) { in.console.Println(s) }

// Table prints rows under headers.
func (in *Invocation) Table(headers []string, rows [][]string) {
	in.console.Println(ui.RenderSimpleTable(ui.ColumnsFor(headers, rows), rows))
}

// View renders a named view and prints it.
func (in *Invocation) View(name string, data any) error {
	out, err := in.kernel.views.Render(name, data)
	if err != nil {
		return err
	}
	in.console.Println(out)
	return nil
}

// Compile renders the template file at path.
func (in *Invocation) Compile(path string, data any) (string, error) {
	return ui.Compile(path, data)
}

// RunTask runs fn under title and prints a finished line. Whether it runs
// in a background worker depends on the tasks settings.
func (in *Invocation) RunTask(ctx context.Context, title string, fn task.Func) (*task.Task, error) {
	t, err := in.runner.Go(ctx, title, fn)
	pd := ui.NewPhaseDisplay(in.console)
	if t.Succeeded() {
		pd.RenderSuccess(title, t.Duration())
	} else {
		pd.RenderFailed(title, t.Duration(), t.Err())
	}
	return t, err
}

// transformData runs the chain for every present key. A failing step stops
// the command with one error line naming the field.
func (in *Invocation) transformData(m transform.Map) outcome {
	if len(m) == 0 {
		return proceed()
	}
	for _, key := range in.data.Keys() {
		chain := m.For(key)
		if len(chain) == 0 {
			continue
		}
		v, err := transform.Apply(in.data.Value(key), chain)
		if err != nil {
			name, typ := in.display(key)
			return halt(Fail(validation.Format(fmt.Sprintf("The :name :type is invalid: %v.", err), name, typ)))
		}
		in.data.Set(key, v)
	}
	return proceed()
}

// display names a field the way the user typed it: --name for options,
// the bare name for arguments.
func (in *Invocation) display(field string) (name, typ string) {
	if in.flags != nil && in.flags.Lookup(field) != nil {
		return "--" + field, "option"
	}
	return field, "argument"
}
