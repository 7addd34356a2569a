package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbootstrap/tfbootstrap/cmd/tfbootstrap/handlers"
)

// Reset returns the command for tearing down the bootstrap identities
// of a member account.
func Reset() *cobra.Command {
	var (
		accountID string
		profile   string
		region    string
		roleName  string
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the bootstrap IAM identities from a member account",
		Long: `Delete the console admin and CLI automation users from a member
account so a subsequent provision run recreates them from scratch.

The account itself is not touched; AWS accounts cannot be deleted
through this tool. Identities that are already absent are skipped.

Examples:
  tfbootstrap reset --account-id 123456789012
  tfbootstrap reset --account-id 123456789012 --profile org-root`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Reset(cmd.Context(), accountID, profile, region, roleName)
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "ID of the member account to reset")
	cmd.Flags().StringVar(&profile, "profile", "", "Org-root shared-credentials profile")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the control-plane calls (default: us-east-1)")
	cmd.Flags().StringVar(&roleName, "role-name", "", "Role assumed in the member account (default: OrganizationAccountAccessRole)")
	_ = cmd.MarkFlagRequired("account-id")

	return cmd
}
