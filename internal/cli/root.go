package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/tmplstore/internal/app"
	"github.com/tacogips/tmplstore/internal/config"
	"github.com/tacogips/tmplstore/internal/debug"
)

// Build information, set by main from ldflags.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags and the configuration they
// resolve to.
type globalOptions struct {
	configPath string
	statePath  string
	noColor    bool
	quiet      bool
	debug      bool

	// env replaces the process environment for config overrides when non-nil.
	env map[string]string

	cfg *config.Config
	out *printer
}

// NewRootCommand builds the tmplstore command tree.
func NewRootCommand() *cobra.Command {
	return newRootCmd(&globalOptions{})
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmplstore",
		Short: "Template catalog state manager",
		Long: `tmplstore keeps a normalized catalog of template summaries in a local
state file and stages community templates for installation.

Every command loads the state file, applies its changes through the
template reducer and writes the result back.

Use "tmplstore template populate <location>" to load a catalog from a
JSON file or an HTTP(S) URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, FlagConfig, "c", "", DescConfig)
	rootCmd.PersistentFlags().StringVar(&opts.statePath, FlagState, "", DescState)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&opts.debug, FlagDebug, false, DescDebug)

	rootCmd.AddCommand(newStateCmd(opts))
	rootCmd.AddCommand(newTemplateCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newStackCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup enables debug logging and resolves configuration. Flags win over the
// config file and environment.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	debug.SetDebug(o.debug)

	loader := &config.FileLoader{Environment: o.env}
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		path, expandErr := config.ExpandPath(o.configPath)
		if expandErr != nil {
			return expandErr
		}
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return err
	}

	if o.noColor {
		cfg.Output.NoColor = true
	}
	if o.quiet {
		cfg.Output.Quiet = true
	}
	if err := loader.Validate(cfg); err != nil {
		return err
	}

	debug.SetNoColor(cfg.Output.NoColor)
	if debug.IsEnabled() {
		shown := *cfg
		if shown.Source.Token != "" {
			shown.Source.Token = "<redacted>"
		}
		debug.DebugJSON("[cli] Config", shown)
	}

	o.cfg = cfg
	o.out = newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.NoColor, cfg.Output.Quiet)
	return nil
}

// withWorkspace opens the state file, runs fn and saves any change, even when
// fn fails, so recorded error statuses persist.
func (o *globalOptions) withWorkspace(cmd *cobra.Command, fn func(ctx context.Context, ws *app.Workspace) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ws, err := app.OpenWorkspace(ctx, app.Options{Config: o.cfg, StateFile: o.statePath})
	if err != nil {
		return err
	}
	defer ws.Close()

	runErr := fn(ctx, ws)
	if ws.Dirty() {
		if err := ws.Save(); err != nil {
			if runErr != nil {
				debug.Debug("[cli] Save failed after command error: %v", err)
				return runErr
			}
			return err
		}
	}
	return runErr
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &globalOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(opts, stderr, err)
		return 1
	}
	return 0
}

// printError prints an error message to stderr
func printError(opts *globalOptions, stderr io.Writer, err error) {
	p := opts.out
	if p == nil {
		p = newPrinter(stderr, stderr, opts.noColor, opts.quiet)
	}
	p.Error("Error: " + err.Error())
}
