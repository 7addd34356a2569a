package orchestration

import (
	"context"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/credstore"
	"github.com/tfbootstrap/tfbootstrap/internal/provisioning"
	"github.com/tfbootstrap/tfbootstrap/internal/render"
	"github.com/tfbootstrap/tfbootstrap/internal/util/naming"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// Orchestrator wires the provisioning phases together. All
// dependencies are injected so the full workflow runs against fakes in
// tests.
type Orchestrator struct {
	Org      cloud.OrgClient
	Identity cloud.IdentityClient
	Store    credstore.Store

	// Bucket enables the state-bucket name preflight when set.
	Bucket provisioning.BucketChecker

	// Observer receives progress output. Defaults to the console
	// observer when nil.
	Observer provisioning.Observer

	// Timeouts defaults to the environment-derived values when nil.
	Timeouts *config.Timeouts

	// OnExisting controls identity reuse. Empty means reuse.
	OnExisting provisioning.ExistingPolicy
}

// Summary is the user-facing result of a completed run.
type Summary struct {
	AccountID   string
	AccountName string
	ProfileName string

	// Resumed is true when the account already existed and the run
	// picked it up instead of creating it.
	Resumed bool

	// BucketNameTaken flags the preflight warning for the caller.
	BucketNameTaken bool

	BootstrapDir string
	SkeletonDir  string
	FilesWritten []string

	ConsoleURL string
	Identities []cloud.Identity
}

// Run executes the full workflow for one account request: resolve,
// provision, preflight, identity bootstrap, and template rendering.
func (o *Orchestrator) Run(ctx context.Context, req *config.ProvisionRequest) (*Summary, error) {
	pctx := provisioning.NewContext(ctx, req, o.Org, o.Identity, o.Store)
	pctx.Bucket = o.Bucket
	if o.Observer != nil {
		pctx.Observer = o.Observer
	}
	if o.Timeouts != nil {
		pctx.Timeouts = o.Timeouts
	}

	phases := []provisioning.Phase{
		resolvePhase{},
		provisionPhase{},
		preflightPhase{},
		identityPhase{onExisting: o.OnExisting},
		renderPhase{set: render.SetBootstrap},
		renderPhase{set: render.SetSkeleton},
	}

	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return nil, err
	}

	account := pctx.State.Account
	return &Summary{
		AccountID:       account.ID,
		AccountName:     account.Name,
		ProfileName:     req.ProfileName,
		Resumed:         !pctx.State.Created,
		BucketNameTaken: pctx.State.BucketNameTaken,
		BootstrapDir:    pctx.State.BootstrapDir,
		SkeletonDir:     pctx.State.SkeletonDir,
		FilesWritten:    pctx.State.FilesWritten,
		ConsoleURL:      naming.ConsoleSignInURL(account.ID),
		Identities:      pctx.State.Identities,
	}, nil
}

// BuildTemplateContext derives the placeholder values for both
// template sets from the request and the resolved account.
func BuildTemplateContext(req *config.ProvisionRequest, account *cloud.OrganizationAccount) render.Context {
	return render.Context{
		"account_id":     account.ID,
		"account_name":   account.Name,
		"admin_email":    account.Email,
		"region":         req.Region,
		"bucket_name":    naming.StateBucket(req.AccountName, account.ID),
		"dynamodb_table": naming.LockTable(req.AccountName),
		"profile_name":   req.ProfileName,
	}
}
