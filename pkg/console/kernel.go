package console

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/internal/ui"
	"github.com/rileyhilliard/console/pkg/config"
	"github.com/rileyhilliard/console/pkg/logger"
	"github.com/rileyhilliard/console/pkg/options"
	"github.com/rileyhilliard/console/pkg/require"
	"github.com/rileyhilliard/console/pkg/task"
	"github.com/rileyhilliard/console/pkg/validation"
)

// Kernel executes commands. One kernel can run any number of commands;
// each execution gets its own Invocation.
type Kernel struct {
	settings    *config.Settings
	log         logger.Logger
	validator   validation.Validator
	prompter    Prompter
	stdin       io.Reader
	stdout      io.Writer
	decorated   *bool
	interactive *bool
	cache       *require.Cache
	views       *ui.Views
	taskOpts    []task.Option
}

// KernelOption configures a Kernel.
type KernelOption func(*Kernel)

// WithSettings replaces the default settings.
func WithSettings(s *config.Settings) KernelOption {
	return func(k *Kernel) {
		if s != nil {
			k.settings = s
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) KernelOption {
	return func(k *Kernel) { k.log = l }
}

// WithValidator replaces the rule validator.
func WithValidator(v validation.Validator) KernelOption {
	return func(k *Kernel) { k.validator = v }
}

// WithPrompter sets where asked values come from.
func WithPrompter(p Prompter) KernelOption {
	return func(k *Kernel) { k.prompter = p }
}

// WithInput sets the stream line prompts read from.
func WithInput(r io.Reader) KernelOption {
	return func(k *Kernel) { k.stdin = r }
}

// WithOutput sets where command output goes.
func WithOutput(w io.Writer) KernelOption {
	return func(k *Kernel) { k.stdout = w }
}

// WithDecorated forces terminal control sequences on or off instead of
// detecting a TTY.
func WithDecorated(on bool) KernelOption {
	return func(k *Kernel) { k.decorated = &on }
}

// WithInteractive forces whether the session counts as interactive.
func WithInteractive(on bool) KernelOption {
	return func(k *Kernel) { k.interactive = &on }
}

// WithRequirementCache sets the cache binary requirement checks share.
func WithRequirementCache(c *require.Cache) KernelOption {
	return func(k *Kernel) { k.cache = c }
}

// WithViews sets the named views Invocation.View renders.
func WithViews(v *ui.Views) KernelOption {
	return func(k *Kernel) { k.views = v }
}

// WithTaskOptions adds runner options applied after the settings-derived
// ones.
func WithTaskOptions(opts ...task.Option) KernelOption {
	return func(k *Kernel) { k.taskOpts = append(k.taskOpts, opts...) }
}

// NewKernel creates a kernel writing to stdout and prompting on stdin.
func NewKernel(opts ...KernelOption) *Kernel {
	k := &Kernel{
		settings:  config.Default(),
		log:       logger.Default(),
		validator: validation.New(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		cache:     require.GlobalCache(),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.views == nil {
		k.views = ui.NewViews(config.ExpandTilde(k.settings.Views.Dir))
	}
	return k
}

// Settings returns the kernel-wide settings.
func (k *Kernel) Settings() *config.Settings { return k.settings }

// Execute runs cmd against already-split tokens (no program or command
// name) and returns the exit status.
//
// Validation, requirement and argument-count failures are printed and
// reported through the status only. A non-nil error is a fault: a
// duplicate option, an unknown flag, a broken definition, or an error the
// handler returned. A help request returns status 0 with pflag.ErrHelp.
func (k *Kernel) Execute(ctx context.Context, cmd Command, tokens []string) (int, error) {
	def := cmd.Definition()
	if err := def.Validate(); err != nil {
		return 1, err
	}

	settings, err := k.settings.WithOverrides(def.Settings)
	if err != nil {
		return 1, err
	}
	if err := config.Validate(settings); err != nil {
		return 1, err
	}

	in := k.newInvocation(cmd, def, settings, tokens)
	k.log.Debug("executing %s with %d tokens", def.Name, len(tokens))

	for _, p := range k.phases() {
		k.log.Debug("%s: %s", def.Name, p.name)
		if o := p.run(ctx, in); o.stopped() {
			return k.finish(in, o)
		}
	}
	return k.finish(in, k.dispatch(ctx, in))
}

// ExecuteLine splits raw the way a shell would and executes cmd.
func (k *Kernel) ExecuteLine(ctx context.Context, cmd Command, raw string) (int, error) {
	tokens, err := options.Tokenize(raw)
	if err != nil {
		return 1, errors.WrapWithCode(err, errors.ErrParse,
			"Cannot split the command line",
			"Check for unbalanced quotes or a trailing backslash.")
	}
	return k.Execute(ctx, cmd, tokens)
}

func (k *Kernel) newInvocation(cmd Command, def Definition, settings *config.Settings, tokens []string) *Invocation {
	term := ui.NewTerminal(k.stdout)
	if k.decorated != nil {
		term = ui.NewTerminalWith(k.stdout, *k.decorated)
	}
	out := ui.NewConsole(term, settings.Output.Color)

	runnerOpts := []task.Option{
		task.WithConcurrent(settings.Tasks.Concurrent),
		task.WithDir(config.ExpandTilde(settings.Tasks.Dir)),
		task.WithInterval(settings.Tasks.Interval),
		task.WithLogger(k.log),
		task.WithStatus(ui.NewPhaseDisplay(out)),
		task.WithFrameStyle(out.Style().Foreground(ui.ColorSecondary)),
	}

	interactive := settings.Prompt.Interactive && ui.IsTerminal(k.stdin)
	if k.interactive != nil {
		interactive = *k.interactive
	}

	prompter := k.prompter
	if prompter == nil {
		if settings.Prompt.Forms && interactive {
			prompter = NewFormPrompter(k.stdin, k.stdout)
		} else {
			prompter = NewLinePrompter(k.stdin, k.stdout)
		}
	}

	return &Invocation{
		kernel:      k,
		cmd:         cmd,
		def:         def,
		settings:    settings,
		tokens:      append([]string(nil), tokens...),
		data:        NewData(),
		arbitrary:   NewData(),
		console:     out,
		runner:      task.NewRunner(term, append(runnerOpts, k.taskOpts...)...),
		prompter:    prompter,
		interactive: interactive,
	}
}

// finish maps an outcome to the exit status. It runs exactly once per
// execution.
func (k *Kernel) finish(in *Invocation, o outcome) (int, error) {
	switch {
	case o.err != nil:
		if stderrors.Is(o.err, pflag.ErrHelp) {
			in.status = 0
			return 0, o.err
		}
		in.status = 1
		if code, ok := errors.GetExitCode(o.err); ok {
			in.status = code
		}
		k.log.Debug("%s failed: %v", in.def.Name, o.err)
		return in.status, o.err
	case o.exit != nil:
		if o.exit.Message != "" {
			level := o.exit.Level
			if level == "" {
				level = ui.LevelError
				if o.exit.Status == 0 {
					level = ui.LevelInfo
				}
			}
			in.console.Line(level, o.exit.Message)
		}
		in.status = o.exit.Status
	}
	k.log.Debug("%s exited with %d", in.def.Name, in.status)
	return in.status, nil
}

// showStats resolves the performance stats switch: definition field, then
// the command's own answer, then settings.
func (k *Kernel) showStats(in *Invocation) bool {
	if in.def.PerformanceStats != nil {
		return *in.def.PerformanceStats
	}
	if r, ok := in.cmd.(PerformanceReporter); ok {
		return r.ShowPerformanceStats()
	}
	return in.settings.Output.PerformanceStats
}
