package wizard

import (
	"fmt"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
)

// Validators reuse the same rules as ProvisionRequest.Validate so a
// wizard-completed request cannot fail validation afterwards.

// ValidateAccountName checks a single account-name answer.
func ValidateAccountName(s string) error {
	req := config.ProvisionRequest{
		AccountName:   s,
		AdminEmail:    "placeholder@example.com",
		AdminPassword: "placeholder-pw",
		Region:        config.DefaultRegion,
	}
	return req.Validate()
}

// ValidateEmail checks a single email answer.
func ValidateEmail(s string) error {
	req := config.ProvisionRequest{
		AccountName:   "placeholder",
		AdminEmail:    s,
		AdminPassword: "placeholder-pw",
		Region:        config.DefaultRegion,
	}
	return req.Validate()
}

// ValidatePassword checks a single password answer.
func ValidatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
