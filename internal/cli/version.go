package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ocp-tools/ocpview/internal/branding"
	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the CLI version")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and pin information as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is what ldflags inject plus the viewer version installs pin to.
type buildInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	ViewerVersion string `json:"viewer_version"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:       buildVersion,
		Commit:        buildCommit,
		Date:          buildDate,
		ViewerVersion: config.Get(config.KeyViewerVersion),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version and the pinned viewer version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		out := cmd.OutOrStdout()
		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("encoding version info: %w", err)
			}
		default:
			fmt.Fprintf(out, "%s %s (%s, %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
			fmt.Fprintf(out, "installs pin %s %s\n", branding.ViewerLibrary(), info.ViewerVersion)
		}
		return nil
	},
}
