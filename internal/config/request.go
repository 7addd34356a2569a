package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tfbootstrap/tfbootstrap/internal/util/naming"
)

// DefaultRoleName is the administrative role AWS preconfigures in member
// accounts created through Organizations.
const DefaultRoleName = "OrganizationAccountAccessRole"

// DefaultRegion is used when neither flag nor config file set a region.
const DefaultRegion = "us-east-1"

// accountNameRegex validates account name format: 1-50 characters,
// alphanumeric plus ._-, starting with an alphanumeric.
var accountNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,49}$`)

// emailRegex is a shape check only; the provider enforces real uniqueness
// and deliverability constraints.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ProvisionRequest is the validated input to a provisioning run.
// Treat as immutable once Validate has passed.
type ProvisionRequest struct {
	AccountName   string
	AdminEmail    string
	AdminPassword string
	Region        string
	OutputDir     string
	Tags          map[string]string

	// Profile is the org-root shared-credentials profile used to reach
	// the Organizations control plane.
	Profile string

	// RoleName is assumed in the new account for IAM bootstrap.
	RoleName string

	// ProfileName is the local profile the CLI automation credentials
	// are written under. Derived from AccountName when empty.
	ProfileName string

	// CredentialsPath is the shared-credentials file to append to.
	// Empty means the store's default (~/.aws/credentials).
	CredentialsPath string

	// Overwrite permits rendering into a non-empty output directory.
	Overwrite bool
}

// ApplyDefaults fills derivable fields that were left empty.
func (r *ProvisionRequest) ApplyDefaults() {
	if r.Region == "" {
		r.Region = DefaultRegion
	}
	if r.RoleName == "" {
		r.RoleName = DefaultRoleName
	}
	if r.OutputDir == "" {
		r.OutputDir = "."
	}
	if r.ProfileName == "" && r.AccountName != "" {
		r.ProfileName = naming.CredentialProfile(r.AccountName)
	}
}

// Validate checks the request for common errors and returns a detailed
// error if validation fails.
func (r *ProvisionRequest) Validate() error {
	if r.AccountName == "" {
		return fmt.Errorf("account name is required")
	}
	if !accountNameRegex.MatchString(r.AccountName) {
		return fmt.Errorf("invalid account name %q: 1-50 alphanumeric, dot, underscore or hyphen characters", r.AccountName)
	}
	if r.AdminEmail == "" {
		return fmt.Errorf("admin email is required")
	}
	if !emailRegex.MatchString(r.AdminEmail) {
		return fmt.Errorf("invalid admin email %q", r.AdminEmail)
	}
	if r.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}
	// IAM default password policy requires at least 8 characters.
	if len(r.AdminPassword) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	if strings.TrimSpace(r.Region) == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}
