package orchestration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tfbootstrap/tfbootstrap/internal/provisioning"
	"github.com/tfbootstrap/tfbootstrap/internal/render"
	"github.com/tfbootstrap/tfbootstrap/internal/util/naming"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// resolvePhase performs the idempotent lookup. A found account is
// carried forward; not-found leaves creation to the provision phase.
type resolvePhase struct{}

func (resolvePhase) Name() string { return "resolve" }

func (resolvePhase) Provision(ctx *provisioning.Context) error {
	resolver := provisioning.NewResolver(ctx.Org, ctx.Timeouts, ctx.Observer)

	account, err := resolver.Resolve(ctx, ctx.Request.AccountName, ctx.Request.AdminEmail)
	if errors.Is(err, provisioning.ErrAccountNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	ctx.State.Account = account
	return nil
}

// provisionPhase creates the account when the resolver found none.
type provisionPhase struct{}

func (provisionPhase) Name() string { return "provision" }

func (provisionPhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.Account != nil {
		ctx.Observer.Printf("account %s already exists, skipping creation", ctx.State.Account.ID)
		return nil
	}

	provisioner := provisioning.NewProvisioner(ctx.Org, ctx.Timeouts, ctx.Observer)
	account, err := provisioner.Provision(ctx, cloud.CreateAccountOpts{
		Name:     ctx.Request.AccountName,
		Email:    ctx.Request.AdminEmail,
		RoleName: ctx.Request.RoleName,
		Tags:     ctx.Request.Tags,
	})
	if err != nil {
		return err
	}

	ctx.State.Account = account
	ctx.State.Created = true
	return nil
}

// preflightPhase warns when the derived state-bucket name is already
// claimed in the global namespace. Non-fatal: on a resumed run the
// bucket legitimately belongs to this account already.
type preflightPhase struct{}

func (preflightPhase) Name() string { return "preflight" }

func (preflightPhase) Provision(ctx *provisioning.Context) error {
	if ctx.Bucket == nil {
		return nil
	}

	bucketName := naming.StateBucket(ctx.Request.AccountName, ctx.State.Account.ID)
	available, err := ctx.Bucket.BucketNameAvailable(ctx, bucketName)
	if err != nil {
		ctx.Observer.Printf("bucket preflight for %s skipped: %v", bucketName, err)
		return nil
	}

	if !available {
		ctx.State.BucketNameTaken = true
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventValidationWarning,
			Resource: bucketName,
			Message:  "state bucket name is already taken; expected on a re-run, otherwise Terraform apply will fail",
		})
	}
	return nil
}

// identityPhase bootstraps the two baseline identities.
type identityPhase struct {
	onExisting provisioning.ExistingPolicy
}

func (identityPhase) Name() string { return "identity" }

func (p identityPhase) Provision(ctx *provisioning.Context) error {
	account := ctx.State.Account
	if account.Status != cloud.StatusActive {
		return fmt.Errorf("account %s is %s, identities can only be bootstrapped in an ACTIVE account", account.ID, account.Status)
	}

	bootstrapper := provisioning.NewBootstrapper(ctx.Identity, ctx.Store, ctx.Timeouts, ctx.Observer)
	if p.onExisting != "" {
		bootstrapper.OnExisting = p.onExisting
	}

	identities, err := bootstrapper.Bootstrap(ctx, account, ctx.Request.AdminPassword, ctx.Request.ProfileName)
	ctx.State.Identities = identities
	return err
}

// renderPhase expands one embedded template set into a subdirectory of
// the output directory.
type renderPhase struct {
	set string
}

func (p renderPhase) Name() string { return "render " + p.set }

func (p renderPhase) Provision(ctx *provisioning.Context) error {
	set, err := render.Embedded(p.set)
	if err != nil {
		return err
	}

	outDir := filepath.Join(ctx.Request.OutputDir, p.set)
	written, err := render.Render(set, BuildTemplateContext(ctx.Request, ctx.State.Account), outDir, ctx.Request.Overwrite)
	if err != nil {
		return err
	}

	switch p.set {
	case render.SetBootstrap:
		ctx.State.BootstrapDir = outDir
	case render.SetSkeleton:
		ctx.State.SkeletonDir = outDir
	}
	ctx.State.FilesWritten = append(ctx.State.FilesWritten, written...)

	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventRenderWritten,
		Resource: outDir,
		Fields:   map[string]string{"files": fmt.Sprintf("%d", len(written))},
	})
	return nil
}
