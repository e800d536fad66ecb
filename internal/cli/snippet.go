package cli

import (
	"fmt"

	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/spf13/cobra"
)

var (
	snippetFile string
	snippetLine int
	snippetPort string
)

var snippetCmd = &cobra.Command{
	Use:   "snippet <library>",
	Short: "Insert a library's import snippet into a file",
	Long: `Insert the configured import lines of a library into a Python file at the
given line (default: end of file). For ocp_vscode a set_port call for the
running viewer is added; this fails when no viewer is running.`,
	Example: `  ocpview snippet build123d --file model.py --line 1
  ocpview snippet ocp_vscode --file model.py`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		a.refresh(cmd.Context(), "")
		a.refreshPort(cmd.Context(), snippetPort)

		var editor libraries.Editor
		if snippetFile != "" {
			editor = &libraries.FileEditor{Path: snippetFile, Line: snippetLine}
		}
		if err := a.libs.PasteSnippet(editor, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted %s snippet into %s\n", args[0], snippetFile)
		return nil
	},
}

func init() {
	snippetCmd.Flags().StringVar(&snippetFile, "file", "", "File to insert into")
	snippetCmd.Flags().IntVar(&snippetLine, "line", 0, "1-based line to insert before (0 appends)")
	snippetCmd.Flags().StringVar(&snippetPort, "port", "", "Viewer port (default: from the viewer state file)")
	rootCmd.AddCommand(snippetCmd)
}
