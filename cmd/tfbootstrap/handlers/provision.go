// Package handlers implements the command logic behind the CLI.
//
// Handlers wire platform clients, the credential store, and the
// orchestrator together. Construction goes through package-level
// factory variables so tests can substitute fakes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/config/wizard"
	"github.com/tfbootstrap/tfbootstrap/internal/credstore"
	"github.com/tfbootstrap/tfbootstrap/internal/orchestration"
	"github.com/tfbootstrap/tfbootstrap/internal/platform/awsorg"
	"github.com/tfbootstrap/tfbootstrap/internal/platform/s3"
	"github.com/tfbootstrap/tfbootstrap/internal/provisioning"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// adminPasswordEnv lets scripts supply the console password without
// putting it on the command line.
const adminPasswordEnv = "TFBOOTSTRAP_ADMIN_PASSWORD" //nolint:gosec // env var name, not a credential value

// Factory function variables for provision - can be replaced in tests.
var (
	// newPlatformClients builds the Organizations and member-account IAM
	// clients from the org-root profile.
	newPlatformClients = func(ctx context.Context, profile, region, roleName string) (cloud.OrgClient, cloud.IdentityClient, error) {
		client, err := awsorg.NewClient(ctx, profile, region, roleName)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	}

	// newBucketChecker builds the S3 preflight client. A nil checker
	// disables the preflight.
	newBucketChecker = func(ctx context.Context, profile, region string) (provisioning.BucketChecker, error) {
		return s3.NewClient(ctx, profile, region)
	}

	// newCredentialStore opens the shared-credentials file.
	newCredentialStore = func(path string) (credstore.Store, error) {
		return credstore.NewFileStore(path)
	}

	// isInteractive reports whether prompting is possible.
	isInteractive = wizard.Interactive

	// completeRequest prompts for missing request fields.
	completeRequest = wizard.Complete
)

// Provision handles the provision command.
//
// Inputs are resolved in precedence order: flags, then the config file,
// then interactive prompts for whatever is still missing. The resolved
// request is validated before any API call is made.
func Provision(ctx context.Context, req *config.ProvisionRequest, configPath, onExisting string) error {
	policy, err := parseExistingPolicy(onExisting)
	if err != nil {
		return err
	}

	if err := mergeConfigFile(req, configPath); err != nil {
		return err
	}
	if req.AdminPassword == "" {
		req.AdminPassword = os.Getenv(adminPasswordEnv)
	}
	req.ApplyDefaults()

	if isInteractive() {
		if err := completeRequest(ctx, req); err != nil {
			return fmt.Errorf("prompt canceled: %w", err)
		}
		req.ApplyDefaults()
	}
	if err := req.Validate(); err != nil {
		return err
	}

	org, identity, err := newPlatformClients(ctx, req.Profile, req.Region, req.RoleName)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS clients: %w", err)
	}
	store, err := newCredentialStore(req.CredentialsPath)
	if err != nil {
		return fmt.Errorf("failed to open credentials file: %w", err)
	}

	bucket, err := newBucketChecker(ctx, req.Profile, req.Region)
	if err != nil {
		// Preflight is best-effort; the run proceeds without it.
		fmt.Fprintf(os.Stderr, "Warning: bucket preflight unavailable: %v\n", err)
		bucket = nil
	}

	orchestrator := &orchestration.Orchestrator{
		Org:        org,
		Identity:   identity,
		Store:      store,
		Bucket:     bucket,
		OnExisting: policy,
	}

	summary, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, summary)
	return nil
}

func parseExistingPolicy(s string) (provisioning.ExistingPolicy, error) {
	switch provisioning.ExistingPolicy(s) {
	case "", provisioning.ExistingReuse:
		return provisioning.ExistingReuse, nil
	case provisioning.ExistingFail:
		return provisioning.ExistingFail, nil
	}
	return "", fmt.Errorf("invalid --on-existing value %q: must be reuse or fail", s)
}

// mergeConfigFile fills empty request fields from the config file.
// An explicitly named file must exist; the auto-detected default is
// optional.
func mergeConfigFile(req *config.ProvisionRequest, configPath string) error {
	explicit := configPath != ""
	if !explicit {
		configPath = config.FindConfigFile()
		if configPath == "" {
			return nil
		}
	}

	file, err := config.LoadFile(configPath)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	file.Merge(req)
	return nil
}
