// Package wizard provides interactive prompts for provisioning request
// fields that were not supplied as flags.
package wizard

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
)

// Interactive reports whether prompting is possible: stdin and stdout
// must both be terminals.
func Interactive() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// Complete prompts for every required request field that is still empty.
// Fields already set by flags or config file are not asked again.
// The context is used for cancellation support (e.g., Ctrl+C).
func Complete(ctx context.Context, req *config.ProvisionRequest) error {
	var fields []huh.Field

	if req.AccountName == "" {
		fields = append(fields, huh.NewInput().
			Title("Account Name").
			Description("Name of the new member account").
			Placeholder("sandbox").
			Value(&req.AccountName).
			Validate(ValidateAccountName))
	}

	if req.AdminEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Admin Email").
			Description("Must not be associated with any existing AWS account").
			Placeholder("aws-sandbox@example.com").
			Value(&req.AdminEmail).
			Validate(ValidateEmail))
	}

	if req.AdminPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Admin Password").
			Description("Console password for the admin user (8+ characters)").
			EchoMode(huh.EchoModePassword).
			Value(&req.AdminPassword).
			Validate(ValidatePassword))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title("New Member Account"),
	).RunWithContext(ctx)
}
