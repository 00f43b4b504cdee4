package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/tmplstore/internal/app"
)

func newStackCmd(opts *globalOptions) *cobra.Command {
	stackCmd := &cobra.Command{
		Use:   "stack",
		Short: "Installed stack commands",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed stacks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				stacks := ws.State().Stacks
				if len(stacks) == 0 {
					opts.out.Info("No stacks")
					return nil
				}
				rows := make([][]string, 0, len(stacks))
				for _, s := range stacks {
					rows = append(rows, []string{s.ID, s.Name, joinOrDash(s.URLs)})
				}
				opts.out.Table([]string{"ID", "NAME", "URLS"}, rows)
				return nil
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set LOCATION",
		Short: "Replace the installed stacks with the list at LOCATION",
		Long: `Replace the installed stack list with the payload at LOCATION: an array
of stacks or an object with a "stacks" array.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				stacks, err := ws.SetStacks(ctx, args[0])
				if err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Recorded %d stacks", len(stacks)))
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an installed stack",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateID(args[0]); err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.RemoveStack(args[0]); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Removed stack %s", args[0]))
				return nil
			})
		},
	}

	stackCmd.AddCommand(listCmd, setCmd, removeCmd)
	return stackCmd
}
