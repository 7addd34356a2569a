package handlers

import (
	"context"
	"fmt"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/provisioning"
)

// resetIdentities is a factory variable so tests can intercept the
// teardown call.
var resetIdentities = provisioning.Reset

// Reset handles the reset command: it deletes the bootstrap IAM
// identities from the member account so a later provision run recreates
// them. The account record itself is untouched.
func Reset(ctx context.Context, accountID, profile, region, roleName string) error {
	if accountID == "" {
		return fmt.Errorf("account ID is required")
	}
	if region == "" {
		region = config.DefaultRegion
	}
	if roleName == "" {
		roleName = config.DefaultRoleName
	}

	_, identity, err := newPlatformClients(ctx, profile, region, roleName)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS clients: %w", err)
	}

	observer := provisioning.NewConsoleObserver().WithFields(map[string]string{"account": accountID})
	if err := resetIdentities(ctx, identity, accountID, observer); err != nil {
		return err
	}

	fmt.Printf("Bootstrap identities removed from account %s.\n", accountID)
	fmt.Println("Run 'tfbootstrap provision' to recreate them.")
	return nil
}
