package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tacogips/tmplstore/internal/app"
	"github.com/tacogips/tmplstore/internal/template/model"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Community template staging commands",
		Long: `Stage a community template and choose which of its dashboards to
install.

Staging records where the template came from, the template itself and an
install summary in which every dashboard carries a shouldInstall flag.`,
	}

	var interactive bool
	stageCmd := &cobra.Command{
		Use:   "stage LOCATION",
		Short: "Stage the community template at LOCATION",
		Long: `Stage the community template at LOCATION. The payload is an object with
a "template" document and a "summary" listing its dashboards.

Examples:
  tmplstore install stage ./community/docker.json
  tmplstore install stage github:owner/community-templates/docker/docker.json@v1
  tmplstore install stage ./community/docker.json --select`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				staged, err := ws.StageCommunityTemplate(ctx, args[0])
				if err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Staged %s with %d dashboards", args[0], len(staged.Summary.Dashboards)))

				if interactive {
					selected, err := promptDashboards(staged)
					if err != nil {
						return err
					}
					for name, install := range installChoices(staged, selected) {
						if err := ws.ToggleDashboardInstall(name, install); err != nil {
							return err
						}
					}
					staged = ws.State().CommunityTemplateToInstall
				}

				printDashboards(opts.out, staged)
				return nil
			})
		},
	}
	stageCmd.Flags().BoolVar(&interactive, FlagSelect, false, DescSelect)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the staged community template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				st := ws.State()
				if st.StagedTemplateURL == "" && len(st.CommunityTemplateToInstall.Summary.Dashboards) == 0 {
					opts.out.Info("Nothing staged")
					return nil
				}
				opts.out.Info(fmt.Sprintf("Staged from: %s", st.StagedTemplateURL))
				printDashboards(opts.out, st.CommunityTemplateToInstall)
				return nil
			})
		},
	}

	var install bool
	toggleCmd := &cobra.Command{
		Use:   "toggle NAME",
		Short: "Choose whether a staged dashboard is installed",
		Long: `Set whether the staged dashboard whose templateMetaName is NAME is
installed.

Examples:
  tmplstore install toggle cpu-dashboard --install=false
  tmplstore install toggle cpu-dashboard`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.ToggleDashboardInstall(args[0], install); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("%s install=%t", args[0], install))
				return nil
			})
		},
	}
	toggleCmd.Flags().BoolVar(&install, FlagInstall, true, DescInstall)

	installCmd.AddCommand(stageCmd, showCmd, toggleCmd)
	return installCmd
}

func printDashboards(p *printer, staged model.CommunityTemplateToInstall) {
	if len(staged.Summary.Dashboards) == 0 {
		p.Info("No dashboards")
		return
	}
	rows := make([][]string, 0, len(staged.Summary.Dashboards))
	for i, d := range staged.Summary.Dashboards {
		name := d.MetaName()
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), name, strconv.FormatBool(d.ShouldInstall)})
	}
	p.Table([]string{"#", "DASHBOARD", "INSTALL"}, rows)
}
