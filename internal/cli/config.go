package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ocp-tools/ocpview/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write ocpview configuration stored at ~/.ocpview/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a scalar setting",
	Long: `Set one of the scalar settings. Library tables (install_commands,
code_snippets, example_downloads) are edited in the config file directly.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			if errors.Is(err, config.ErrNotSettable) {
				return fmt.Errorf("%w (settable: %s)", err, strings.Join(config.SettableKeys(), ", "))
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting or library table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(config.Get(args[0]), "\n"))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file (default: the user config)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FilePath()
		if len(args) == 1 {
			path = args[0]
		} else if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file at %s; defaults are used.\n", path)
			return nil
		}

		result, err := config.ValidateFile(path)
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "[FAIL] %s: %s (%s)\n", issuePath(issue.Path), issue.Message, issue.Keyword)
		}
		return fmt.Errorf("%s has %d issue(s)", path, len(result.Issues))
	},
}

func issuePath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
