package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/ocp-tools/ocpview/internal/prompt"
	"github.com/ocp-tools/ocpview/internal/terminal"
	"github.com/ocp-tools/ocpview/internal/ui"
	"github.com/spf13/cobra"
)

var (
	installPython   string
	installYes      bool
	installCommands []string
)

var installCmd = &cobra.Command{
	Use:   "install <library>",
	Short: "Install a library into the selected Python environment",
	Long: `Install a configured library by running its install commands in a shell.

The interpreter is confirmed first and its version is checked against
required_python. The commands run in a pseudo-terminal so pip output is shown
as it happens; the shell exits when they are done and the library list is
refreshed. --command replaces the configured commands and may be repeated.`,
	Example: `  ocpview install ocp_vscode
  ocpview install build123d --python ~/venvs/cad/bin/python --yes
  ocpview install mylib --command "{python} -m pip install mylib"`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installPython, "python", "", "Python interpreter to install into")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Do not ask for confirmation")
	installCmd.Flags().StringArrayVar(&installCommands, "command", nil, "Install command template (repeatable)")
	rootCmd.AddCommand(installCmd)
}

// newOpener starts the terminal installs run in; tests replace it.
var newOpener = func(out io.Writer, logger *slog.Logger) terminal.Opener {
	return &terminal.PTYOpener{Output: out, Logger: logger}
}

func runInstall(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	ctx := cmd.Context()
	a.refresh(ctx, installPython)

	var p prompt.Prompter = prompt.Always{Answer: true}
	if !installYes {
		p = prompt.New(os.Stdin, cmd.ErrOrStderr())
	}

	out := cmd.OutOrStdout()
	// The refresh that follows the install redraws the library tree.
	a.libs.OnChange(func() {
		fmt.Fprintln(out, ui.RenderLibraries(a.libs, a.styles))
	})

	library := args[0]
	err := a.libs.Install(ctx, libraries.InstallRequest{
		Library:  library,
		Commands: installCommands,
		Prompter: p,
		Opener:   newOpener(out, a.logger),
		OnDone: func() {
			if r, ok := a.libs.Installed(library); ok {
				fmt.Fprintf(out, "%s %s is installed\n", library, r.Version)
			} else {
				fmt.Fprintf(out, "%s is still not installed; check the terminal output above\n", library)
			}
		},
	})
	if errors.Is(err, libraries.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Installation cancelled.")
		return nil
	}
	return err
}
