package commands

import (
	"github.com/spf13/cobra"

	"github.com/tfbootstrap/tfbootstrap/cmd/tfbootstrap/handlers"
	"github.com/tfbootstrap/tfbootstrap/internal/config"
)

// Provision returns the command for provisioning a member account.
//
// The run is idempotent: an account whose admin email already belongs
// to the organization is picked up as-is, and existing IAM identities
// are reused unless --on-existing=fail.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect tfbootstrap.yaml)
//	--output, -o: Directory the tf.bootstrap and tf.skel trees are rendered into
//
// Environment variables:
//
//	TFBOOTSTRAP_ADMIN_PASSWORD: console password for the admin user,
//	an alternative to --password on shared shells
func Provision() *cobra.Command {
	var (
		configPath string
		onExisting string
		req        config.ProvisionRequest
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create a member account and render its Terraform bootstrap",
		Long: `Create a new member account in the organization and prepare it for
Terraform-managed infrastructure.

The workflow has five steps:
  1. Look up the account by admin email (re-runs resume here)
  2. Create the account and poll until the request completes
  3. Check the derived state-bucket name is still unclaimed
  4. Create the console admin and CLI automation users
  5. Render the tf.bootstrap and tf.skel Terraform trees

Missing required inputs are prompted for interactively when run from a
terminal. On failure, fix the cause and re-run: completed steps are
detected and skipped.

Examples:
  # Fully interactive
  tfbootstrap provision

  # Non-interactive
  tfbootstrap provision --name sandbox --email aws-sandbox@example.com \
    --password "$TFBOOTSTRAP_ADMIN_PASSWORD" --region eu-west-1 -o ./sandbox

  # Shared settings from a config file
  tfbootstrap provision -c team.yaml --name sandbox --email aws-sandbox@example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), &req, configPath, onExisting)
		},
	}

	cmd.Flags().StringVar(&req.AccountName, "name", "", "Name of the new member account")
	cmd.Flags().StringVar(&req.AdminEmail, "email", "", "Admin email for the account (must be unused in AWS)")
	cmd.Flags().StringVar(&req.AdminPassword, "password", "", "Console password for the admin user")
	cmd.Flags().StringVar(&req.Region, "region", "", "AWS region for the rendered Terraform backend (default: us-east-1)")
	cmd.Flags().StringVarP(&req.OutputDir, "output", "o", "", "Output directory for rendered trees (default: current directory)")
	cmd.Flags().StringVar(&req.Profile, "profile", "", "Org-root shared-credentials profile for the Organizations API")
	cmd.Flags().StringVar(&req.RoleName, "role-name", "", "Role assumed in the new account (default: OrganizationAccountAccessRole)")
	cmd.Flags().StringVar(&req.ProfileName, "profile-name", "", "Local profile name for the automation credentials (default: tf-user-<name>)")
	cmd.Flags().StringVar(&req.CredentialsPath, "credentials-file", "", "Shared-credentials file to append to (default: ~/.aws/credentials)")
	cmd.Flags().StringToStringVar(&req.Tags, "tag", nil, "Tag applied to the new account (repeatable, key=value)")
	cmd.Flags().BoolVar(&req.Overwrite, "overwrite", false, "Allow rendering into a non-empty output directory")
	cmd.Flags().StringVar(&onExisting, "on-existing", "reuse", "Behavior when an IAM identity already exists: reuse or fail")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tfbootstrap.yaml)")

	return cmd
}
