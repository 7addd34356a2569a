// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the tfbootstrap CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tfbootstrap",
		Short: "Provision AWS member accounts with a Terraform bootstrap",
	}

	cmd.AddCommand(Provision())
	cmd.AddCommand(Reset())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
