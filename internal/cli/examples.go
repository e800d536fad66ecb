package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var examplesDest string

var examplesCmd = &cobra.Command{
	Use:   "examples <library>",
	Short: "Download a library's example scripts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		a.refresh(cmd.Context(), "")

		dest := examplesDest
		if dest == "" {
			dest = args[0] + "-examples"
		}
		n, err := a.libs.DownloadExamples(cmd.Context(), args[0], dest)
		if err != nil {
			return err
		}
		a.logger.Debug("examples extracted", "library", args[0], "files", n, "dest", dest)
		fmt.Fprintln(cmd.OutOrStdout(), dest)
		return nil
	},
}

func init() {
	examplesCmd.Flags().StringVar(&examplesDest, "dest", "", "Target directory (default: ./<library>-examples)")
	rootCmd.AddCommand(examplesCmd)
}
