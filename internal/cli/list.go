package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/ocp-tools/ocpview/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listPython string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured libraries and their installation state",
	Long: `List every library configured under install_commands together with the
version, installer and environment it is installed in for the selected
Python interpreter.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listPython, "python", "", "Python interpreter to inspect")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a configured library for JSON output.
type listEntry struct {
	Name        string `json:"name"`
	Installed   bool   `json:"installed"`
	Version     string `json:"version,omitempty"`
	Installer   string `json:"installer,omitempty"`
	Environment string `json:"environment,omitempty"`
	Editable    bool   `json:"editable"`
	Location    string `json:"location,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	out := cmd.OutOrStdout()
	if !listJSON {
		a.libs.OnChange(func() {
			fmt.Fprintf(out, "Python: %s\n", a.libs.Python())
			fmt.Fprintln(out, ui.RenderLibraries(a.libs, a.styles))
		})
	}
	a.refresh(cmd.Context(), listPython)

	if listJSON {
		data, err := json.MarshalIndent(listEntries(a.libs), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling libraries: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}

func listEntries(libs *libraries.Tracker) []listEntry {
	entries := []listEntry{}
	for _, n := range libs.Roots() {
		entry := listEntry{Name: n.Library}
		if r, ok := libs.Installed(n.Library); ok {
			entry.Installed = true
			entry.Version = r.Version
			entry.Installer = r.Installer
			entry.Environment = libraries.Environment(r)
			entry.Editable = r.Editable()
			entry.Location = r.Location
		}
		entries = append(entries, entry)
	}
	return entries
}
