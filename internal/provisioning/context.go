package provisioning

import (
	"context"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/credstore"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// BucketChecker is the preflight dependency: it answers whether a
// state-bucket name is still unclaimed. Implemented by
// internal/platform/s3.Client.
type BucketChecker interface {
	BucketNameAvailable(ctx context.Context, bucketName string) (bool, error)
}

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is read by
// subsequent phases that need earlier results.
type State struct {
	// Account is set by the resolve phase (existing account) or the
	// provision phase (freshly created account).
	Account *cloud.OrganizationAccount

	// Created is true when the provision phase actually created the
	// account, false on an idempotent re-run.
	Created bool

	// BucketNameTaken is set by the preflight phase when the derived
	// state-bucket name is already claimed.
	BucketNameTaken bool

	// Identities is set by the identity phase.
	Identities []cloud.Identity

	// Render results.
	BootstrapDir string
	SkeletonDir  string
	FilesWritten []string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning
// phase.
type Context struct {
	context.Context
	Request  *config.ProvisionRequest
	State    *State
	Org      cloud.OrgClient
	Identity cloud.IdentityClient
	Store    credstore.Store
	Bucket   BucketChecker // nil disables the preflight
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	req *config.ProvisionRequest,
	org cloud.OrgClient,
	identity cloud.IdentityClient,
	store credstore.Store,
) *Context {
	return &Context{
		Context:  ctx,
		Request:  req,
		State:    NewState(),
		Org:      org,
		Identity: identity,
		Store:    store,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
