package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	viewerCmd.AddCommand(viewerPortsCmd)
	viewerCmd.AddCommand(viewerRegisterCmd)
	viewerCmd.AddCommand(viewerUnregisterCmd)
	rootCmd.AddCommand(viewerCmd)
}

var viewerCmd = &cobra.Command{
	Use:   "viewer",
	Short: "Inspect and edit the viewer state file",
	Long: `Running viewers register their port in ~/.ocpvscode. These commands list,
add and remove registrations; the file is locked while it is accessed.`,
}

var viewerPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List registered viewer ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := stateStore()
		if err != nil {
			return err
		}
		services, err := store.Services(cmd.Context())
		if err != nil {
			return err
		}
		ports, err := store.Ports(cmd.Context())
		if err != nil {
			return err
		}
		for _, port := range ports {
			if file := services[port]; file != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", port, file)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), port)
			}
		}
		return nil
	},
}

var viewerRegisterCmd = &cobra.Command{
	Use:   "register <port> [connection-file]",
	Short: "Register a viewer port",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := stateStore()
		if err != nil {
			return err
		}
		connection := ""
		if len(args) == 2 {
			connection = args[1]
		}
		if err := store.Register(cmd.Context(), args[0], connection); err != nil {
			return fmt.Errorf("registering port %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered port %s in %s\n", args[0], store.Path())
		return nil
	},
}

var viewerUnregisterCmd = &cobra.Command{
	Use:   "unregister <port>",
	Short: "Remove a viewer port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := stateStore()
		if err != nil {
			return err
		}
		if err := store.Unregister(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("unregistering port %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Unregistered port %s\n", args[0])
		return nil
	},
}
