package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/console/internal/errors"
	"github.com/rileyhilliard/console/internal/util"
	"github.com/rileyhilliard/console/pkg/config"
	"github.com/rileyhilliard/console/pkg/console"
	"github.com/rileyhilliard/console/pkg/logger"
)

// ConfigEnv names an explicit settings file. Flags can't carry it because
// subcommands leave flag parsing to the kernel.
const ConfigEnv = config.PathEnv

// NewRootCmd builds the command tree on top of k.
func NewRootCmd(k *console.Kernel) *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "Example commands built on the console framework",
		Long: `console is a small showcase of the console command framework.

Every subcommand is a framework command: options are parsed, merged,
transformed and validated by the kernel before the handler runs.

Examples:
  console greet ada --greeting=Hi
  console backup ./src --exclude=.git
  console env .env
  console render ./report.tmpl --data=report.yaml --title="Q3"`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		k.Cobra(&greetCommand{}),
		k.Cobra(&backupCommand{}),
		k.Cobra(&envCommand{}),
		k.Cobra(&renderCommand{}),
		k.Cobra(&versionCommand{}),
	)
	root.AddCommand(newCompletionCmd(root))
	return root
}

// Execute runs the CLI and exits with the command's status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	settings, err := config.LoadOrDefault(os.Getenv(ConfigEnv))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log, closeLog := newLogger(settings.Log)
	defer closeLog()
	logger.SetDefault(log)

	k := console.NewKernel(
		console.WithSettings(settings),
		console.WithLogger(log),
		console.WithOutput(stdout),
	)

	root := NewRootCmd(k)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return exitStatus(root.ExecuteContext(ctx), root, stderr)
}

// exitStatus maps what cobra returned to a process status. Commands that
// already printed their problem come back as an ExitError and stay quiet.
func exitStatus(err error, root *cobra.Command, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if cmd := extractUnknownCommand(err); cmd != "" {
			var names []string
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			if similar := util.SuggestSimilar(cmd, names, 3); len(similar) > 0 {
				fmt.Fprintf(stderr, "Did you mean %s?\n", util.JoinOrNone(similar))
			}
			fmt.Fprintf(stderr, "%q is not a %s command. Run '%s --help' to list them.\n", cmd, root.Name(), root.Name())
		}
		return 1
	}

	fmt.Fprintln(stderr, err)
	return 1
}

// newLogger logs to a rotating file when one is configured, otherwise to
// stderr through the env logger. The returned func releases the file.
func newLogger(cfg config.LogConfig) (logger.Logger, func()) {
	if cfg.File == "" {
		return logger.NewEnvLogger("[console]"), func() {}
	}

	rotation := logger.DefaultRotation()
	if cfg.MaxSize > 0 {
		rotation.MaxSize = cfg.MaxSize
	}
	if cfg.MaxBackups > 0 {
		rotation.MaxBackups = cfg.MaxBackups
	}
	if cfg.MaxAge > 0 {
		rotation.MaxAge = cfg.MaxAge
	}
	rotation.Compress = cfg.Compress

	l := logger.NewFileLogger("[console]", config.ExpandTilde(cfg.File), cfg.Debug, rotation)
	return l, func() {
		if c, ok := l.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// isUnknownCommandError checks if the error is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "console"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
