package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/tmplstore/internal/app"
	"github.com/tacogips/tmplstore/internal/template/model"
)

func newTemplateCmd(opts *globalOptions) *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Template catalog commands",
		Long: `Manage the template catalog.

LOCATION is a path to a JSON file, a file:// URL, an http(s):// URL or "-"
for standard input. Catalog payloads may be a single template summary, an
array of summaries, an object with a "templates" array or an already
normalized {"entities": ..., "result": ...} document.`,
	}

	templateCmd.AddCommand(
		newTemplateListCmd(opts),
		newTemplatePopulateCmd(opts),
		newTemplateAddCmd(opts),
		newTemplateRemoveCmd(opts),
		newTemplateSetCmd(opts),
		newTemplateExportCmd(opts),
		newTemplateStatusCmd(opts),
	)
	return templateCmd
}

func newTemplateListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates in catalog order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				st := ws.State()
				opts.out.Info(fmt.Sprintf("Status: %s", st.Status))
				if st.Len() == 0 {
					opts.out.Info("No templates")
					return nil
				}

				rows := make([][]string, 0, st.Len())
				for _, t := range st.Templates() {
					rows = append(rows, []string{
						t.ID,
						t.Meta.Name,
						t.Meta.Type,
						t.Meta.Version,
						string(t.Status),
						joinOrDash(t.Labels),
					})
				}
				opts.out.Table([]string{"ID", "NAME", "TYPE", "VERSION", "STATUS", "LABELS"}, rows)
				return nil
			})
		},
	}
}

func newTemplatePopulateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "populate LOCATION",
		Short: "Replace the catalog with the templates at LOCATION",
		Long: `Replace the whole catalog with the templates at LOCATION. The collection
status is set to Done on success and Error when the payload cannot be
loaded.

Examples:
  tmplstore template populate ./templates.json
  tmplstore template populate https://example.com/api/templates`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				st, err := ws.PopulateTemplates(ctx, args[0])
				if err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Loaded %d templates", st.Len()))
				return nil
			})
		},
	}
}

func newTemplateAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add LOCATION",
		Short: "Add or replace the templates at LOCATION",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				ids, err := ws.AddTemplate(ctx, args[0])
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					opts.out.Warning("Payload contained no templates")
					return nil
				}
				opts.out.Success(fmt.Sprintf("Added %s", strings.Join(ids, ", ")))
				return nil
			})
		},
	}
}

func newTemplateRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a template from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateID(args[0]); err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.RemoveTemplate(args[0]); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Removed %s", args[0]))
				return nil
			})
		},
	}
}

func newTemplateSetCmd(opts *globalOptions) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "set ID LOCATION",
		Short: "Replace one template with the summary at LOCATION",
		Long: `Replace the template ID with the summary at LOCATION and record the
collection status. The payload must contain a summary with the same id.

Examples:
  tmplstore template set 42 ./template-42.json
  tmplstore template set 42 ./template-42.json --status Loading`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateID(args[0]); err != nil {
				return err
			}
			st, err := ValidateStatus(status)
			if err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.SetTemplate(ctx, args[0], args[1], st); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Updated %s", args[0]))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, FlagStatus, string(model.Done), DescStatus)
	return cmd
}

func newTemplateExportCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Record and print a template export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.format(format)
			if err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				export, err := ws.ExportTemplate(args[0])
				if err != nil {
					return err
				}
				return opts.out.Structured(export, f)
			})
		},
	}
	cmd.Flags().StringVarP(&format, FlagFormat, "f", "", DescFormat)
	return cmd
}

func newTemplateStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status STATUS",
		Short: "Set the collection status",
		Long: `Set the collection load status. STATUS is one of NotStarted, Loading,
Done or Error (case-insensitive).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ValidateStatus(args[0])
			if err != nil {
				return err
			}
			return opts.withWorkspace(cmd, func(ctx context.Context, ws *app.Workspace) error {
				if err := ws.SetStatus(st); err != nil {
					return err
				}
				opts.out.Success(fmt.Sprintf("Status set to %s", st))
				return nil
			})
		},
	}
}
