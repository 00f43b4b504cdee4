package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/tmplstore/internal/app"
)

func newStateCmd(opts *globalOptions) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "State file commands",
		Long: `Inspect and manage the state file.

The state file holds the template catalog, the current export, the staged
community template and the installed stacks as JSON.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the state file with default contents",
		Long: `Create the state file if it does not exist. An existing state file is
validated and rewritten unchanged.

Examples:
  tmplstore state init
  tmplstore --state ./state.json state init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.Save(); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("State file ready: %s", ws.Path()))
				return nil
			})
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the state",
		Long: `Print the full state as JSON or YAML.

Examples:
  tmplstore state show
  tmplstore state show --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.format(format)
			if err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				return opts.out.Structured(ws.State(), f)
			})
		},
	}
	showCmd.Flags().StringVarP(&format, FlagFormat, "f", "", DescFormat)

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the state to its defaults",
		Long: `Discard the catalog, export, staged template and stacks. Asks for
confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := promptConfirm("Discard all template state?")
				if err != nil {
					return fmt.Errorf("%w (use --yes to skip confirmation)", err)
				}
				if !ok {
					opts.out.Warning("Reset cancelled")
					return nil
				}
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				ws.Reset()
				opts.out.Success("State reset")
				return nil
			})
		},
	}
	resetCmd.Flags().BoolVarP(&yes, FlagYes, "y", false, DescYes)

	stateCmd.AddCommand(initCmd, showCmd, resetCmd)
	return stateCmd
}

// format resolves a --format flag, falling back to output.format.
func (o *globalOptions) format(flag string) (string, error) {
	if flag == "" {
		flag = o.cfg.Output.Format
	}
	return ValidateFormat(flag)
}
