package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsPython string

var commandsCmd = &cobra.Command{
	Use:   "commands <library>",
	Short: "Print the resolved install commands of a library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		a.refresh(cmd.Context(), commandsPython)

		commands, err := a.libs.InstallCommands(args[0], nil)
		if err != nil {
			return err
		}
		for _, c := range commands {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	commandsCmd.Flags().StringVar(&commandsPython, "python", "", "Python interpreter to substitute for {python}")
	rootCmd.AddCommand(commandsCmd)
}
