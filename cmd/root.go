// Package cmd contains the CLI commands for the linkcheck application.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmdocs/linkcheck/internal/config"
)

// verbose holds the global --verbose flag state.
var verbose bool

// siteRoot holds the global --root flag state.
var siteRoot string

// GetVerbose returns the current verbose flag state.
func GetVerbose() bool {
	return verbose
}

// GetRoot returns the --root flag value, or "" when the site root should be
// discovered from the working directory.
func GetRoot() string {
	return siteRoot
}

// NewRootCmd creates a new root command instance with no subcommands.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkcheck",
		Short: "Validate internal links across the site's MDX content",
		Long: "linkcheck derives the route of every MDX page in the site's content " +
			"directories and reports every internal link that points at a route " +
			"no page publishes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd.ErrOrStderr(), verbose)
		},
	}

	// Add persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&siteRoot, "root", "", "Site root `dir` (default: nearest ancestor holding the content directory)")

	return cmd
}

// configureLogging installs the default slog logger writing text to w.
func configureLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// BuildCommandTree assembles the root command with its subcommands. Running
// the root command without a subcommand performs a check.
func BuildCommandTree(checker CheckRunner, lister RoutesLister, newWriter ReportWriterFactory) *cobra.Command {
	root := NewRootCmd()
	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runCheckAndReport(cmd, checker, newWriter, false, "")
	}
	root.AddCommand(NewCheckCmd(checker, newWriter))
	root.AddCommand(NewRoutesCmd(lister))
	root.AddCommand(NewSchemaCmd())
	return root
}

// NewApp returns the fully wired production command tree.
func NewApp() *cobra.Command {
	wiring := newServiceWiring(config.Default())
	return BuildCommandTree(
		&checkAdapter{wiring: wiring},
		&routesAdapter{wiring: wiring},
		newReportWriter,
	)
}

// ExecuteContext runs the production command tree with the given context.
// This enables graceful shutdown via context cancellation (e.g., on SIGINT).
func ExecuteContext(ctx context.Context) error {
	return NewApp().ExecuteContext(ctx)
}
