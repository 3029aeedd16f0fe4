package console

import (
	stderrors "errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rileyhilliard/console/internal/errors"
)

// Cobra binds cmd to a cobra command. Cobra only routes to it: flag parsing
// is left to the kernel so undeclared options can be discovered. The
// declared flags are still registered for help and completion.
//
// A non-zero status is returned as *errors.ExitError after its messages
// were printed.
func (k *Kernel) Cobra(cmd Command) *cobra.Command {
	def := cmd.Definition()
	c := &cobra.Command{
		Use:                def.Use(),
		Short:              def.Short,
		Long:               def.Long,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(c *cobra.Command, args []string) error {
			status, err := k.Execute(c.Context(), cmd, args)
			if stderrors.Is(err, pflag.ErrHelp) {
				return c.Help()
			}
			if err != nil {
				return err
			}
			if status != 0 {
				return errors.NewExitError(status)
			}
			return nil
		},
	}
	c.Flags().AddFlagSet(def.FlagSet())
	return c
}
