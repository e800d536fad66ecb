package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ocp-tools/ocpview/internal/branding"
	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` companion: installs and inspects the Python libraries the viewer
ecosystem needs (ocp_vscode, build123d, cadquery, the Jupyter kernel) and reports
whether the viewer is running.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log subprocess and state details to stderr")
}

// newLogger logs to w; debug records only appear with --verbose.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute runs the CLI until it finishes or the user interrupts it.
func Execute(version, commit, date string) error {
	buildVersion, buildCommit, buildDate = version, commit, date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !libraries.Reported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
