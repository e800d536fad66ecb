package cli

import (
	"fmt"

	"github.com/ocp-tools/ocpview/internal/extension"
	"github.com/ocp-tools/ocpview/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statusPort   string
	statusPython string
	statusEditor string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the viewer is installed and running",
	Long: `Show the viewer status: whether ocp_vscode is installed, whether a viewer
is running and on which port, the supporting libraries, and whether the
companion Jupyter extension is installed in the editor.

Without --port the port is taken from the viewer state file; pass --port
"<none>" to report the viewer as stopped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)

		ctx := cmd.Context()
		a.refresh(ctx, statusPython)
		a.refreshPort(ctx, statusPort)

		det := extension.NewDetector(runner, statusEditor)
		present, err := det.Installed(ctx, extension.JupyterID)
		if err != nil {
			a.logger.Debug("extension detection failed", "command", det.Command(), "err", err)
		}
		// The extension is the last piece of state; its change draws the tree.
		a.status.OnChange(func() {
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderStatus(a.status, a.styles))
		})
		a.status.SetExtension(present)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusPort, "port", "", "Viewer port (default: from the viewer state file)")
	statusCmd.Flags().StringVar(&statusPython, "python", "", "Python interpreter to inspect")
	statusCmd.Flags().StringVar(&statusEditor, "editor", extension.DefaultCommand, "Editor CLI used to list extensions")
	rootCmd.AddCommand(statusCmd)
}
