package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/credstore"
	"github.com/tfbootstrap/tfbootstrap/internal/util/retry"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// Baseline identity usernames created in every member account.
const (
	ConsoleUsername = "admin"
	CLIUsername     = "tf-user"
)

// ExistingPolicy decides what happens when an identity the bootstrapper
// wants to create already exists in the account.
type ExistingPolicy string

const (
	// ExistingReuse treats an already-existing identity as resumable:
	// the step is considered done and bootstrap continues. This is the
	// default, matching the idempotent re-run design.
	ExistingReuse ExistingPolicy = "reuse"
	// ExistingFail surfaces an IdentityBootstrapError with a
	// distinguishable already-exists reason.
	ExistingFail ExistingPolicy = "fail"
)

// Bootstrapper creates the two baseline identities in a new account and
// captures their credentials.
type Bootstrapper struct {
	identity cloud.IdentityClient
	store    credstore.Store
	policy   retry.Policy
	observer Observer

	// OnExisting is consulted when an identity already exists.
	OnExisting ExistingPolicy
}

// NewBootstrapper builds a bootstrapper with the identity retry policy
// from the given timeouts.
func NewBootstrapper(identity cloud.IdentityClient, store credstore.Store, timeouts *config.Timeouts, observer Observer) *Bootstrapper {
	return &Bootstrapper{
		identity:   identity,
		store:      store,
		policy:     retry.NewPolicy(timeouts.IdentityMaxAttempts, timeouts.IdentityInitialDelay, 30*time.Second, 2.0),
		observer:   observer,
		OnExisting: ExistingReuse,
	}
}

// Bootstrap creates the console admin, then the CLI automation user,
// then persists the CLI credentials under profileName. Order matters:
// each step requires the previous one. A later step failing leaves
// earlier identities in place; rollback of IAM state is deliberately
// not attempted, a re-run resumes instead.
//
// The account is freshly created, so identity calls are retried with
// backoff while the access role is not assumable yet.
func (b *Bootstrapper) Bootstrap(ctx context.Context, account *cloud.OrganizationAccount, adminPassword, profileName string) ([]cloud.Identity, error) {
	console, err := b.createConsoleAdmin(ctx, account, adminPassword)
	if err != nil {
		return nil, err
	}

	cli, err := b.createCLIAutomation(ctx, account)
	if err != nil {
		return []cloud.Identity{*console}, err
	}

	if err := b.store.Put(profileName, *cli.AccessKey); err != nil {
		return []cloud.Identity{*console, *cli}, &IdentityBootstrapError{
			AccountID: account.ID,
			Step:      StepPersistCredentials,
			Err:       err,
		}
	}
	b.observer.Printf("credentials for %s written under profile %s", CLIUsername, profileName)

	return []cloud.Identity{*console, *cli}, nil
}

func (b *Bootstrapper) createConsoleAdmin(ctx context.Context, account *cloud.OrganizationAccount, adminPassword string) (*cloud.Identity, error) {
	if err := b.createUser(ctx, account.ID, ConsoleUsername, StepConsoleAdmin); err != nil {
		return nil, err
	}
	if err := b.attachPolicy(ctx, account.ID, ConsoleUsername, StepConsoleAdmin); err != nil {
		return nil, err
	}

	err := b.call(ctx, func() error {
		return b.identity.CreateLoginProfile(ctx, account.ID, ConsoleUsername, adminPassword)
	})
	if err != nil {
		if cloud.IsAlreadyExists(err) && b.OnExisting == ExistingReuse {
			b.observer.Event(Event{Type: EventIdentityExists, Resource: ConsoleUsername, Message: "login profile already present"})
		} else {
			return nil, b.stepError(account.ID, StepConsoleAdmin, err)
		}
	}

	b.observer.Event(Event{Type: EventIdentityCreated, Resource: ConsoleUsername,
		Fields: map[string]string{"account": account.ID}})
	return &cloud.Identity{
		Kind:        cloud.ConsoleAdmin,
		Username:    ConsoleUsername,
		AccountID:   account.ID,
		HasPassword: true,
	}, nil
}

func (b *Bootstrapper) createCLIAutomation(ctx context.Context, account *cloud.OrganizationAccount) (*cloud.Identity, error) {
	if err := b.createUser(ctx, account.ID, CLIUsername, StepCLIAutomation); err != nil {
		return nil, err
	}
	if err := b.attachPolicy(ctx, account.ID, CLIUsername, StepCLIAutomation); err != nil {
		return nil, err
	}

	var key *cloud.AccessKey
	err := b.call(ctx, func() error {
		var keyErr error
		key, keyErr = b.identity.CreateAccessKey(ctx, account.ID, CLIUsername)
		return keyErr
	})
	if err != nil {
		return nil, b.stepError(account.ID, StepCLIAutomation, err)
	}

	b.observer.Event(Event{Type: EventIdentityCreated, Resource: CLIUsername,
		Fields: map[string]string{"account": account.ID}})
	return &cloud.Identity{
		Kind:      cloud.CLIAutomation,
		Username:  CLIUsername,
		AccountID: account.ID,
		AccessKey: key,
	}, nil
}

func (b *Bootstrapper) createUser(ctx context.Context, accountID, username, step string) error {
	err := b.call(ctx, func() error {
		return b.identity.CreateUser(ctx, accountID, username)
	})
	if err != nil {
		if cloud.IsAlreadyExists(err) && b.OnExisting == ExistingReuse {
			b.observer.Event(Event{Type: EventIdentityExists, Resource: username, Message: "reusing existing user"})
			return nil
		}
		return b.stepError(accountID, step, err)
	}
	return nil
}

func (b *Bootstrapper) attachPolicy(ctx context.Context, accountID, username, step string) error {
	// Attaching an already-attached managed policy is a provider-side
	// no-op, so no existence handling is needed here.
	err := b.call(ctx, func() error {
		return b.identity.AttachAdminPolicy(ctx, accountID, username)
	})
	if err != nil {
		return b.stepError(accountID, step, err)
	}
	return nil
}

// call runs one identity API call under the retry policy. Not-ready
// conditions (denied access to a role that is still materializing,
// throttling) are retried; everything else is fatal to the attempt.
func (b *Bootstrapper) call(ctx context.Context, op func() error) error {
	return b.policy.Do(ctx, func() error {
		err := op()
		if err == nil {
			return nil
		}
		if cloud.IsRetryable(err) || cloud.IsAccessDenied(err) {
			return err
		}
		return retry.Fatal(err)
	})
}

func (b *Bootstrapper) stepError(accountID, step string, err error) error {
	return &IdentityBootstrapError{
		AccountID: accountID,
		Step:      step,
		Exists:    cloud.IsAlreadyExists(err),
		Err:       err,
	}
}

// Reset deletes the baseline identities from a member account, CLI user
// first since its credentials are the ones in active use by tooling.
// Used for re-bootstrap testing; account closure stays a manual,
// out-of-band operation.
func Reset(ctx context.Context, identity cloud.IdentityClient, accountID string, observer Observer) error {
	type teardown struct {
		name string
		op   func() error
	}

	steps := []teardown{
		{"delete access keys", func() error { return identity.DeleteAccessKeys(ctx, accountID, CLIUsername) }},
		{"detach cli policy", func() error { return identity.DetachAdminPolicy(ctx, accountID, CLIUsername) }},
		{"delete cli user", func() error { return identity.DeleteUser(ctx, accountID, CLIUsername) }},
		{"delete login profile", func() error { return identity.DeleteLoginProfile(ctx, accountID, ConsoleUsername) }},
		{"detach admin policy", func() error { return identity.DetachAdminPolicy(ctx, accountID, ConsoleUsername) }},
		{"delete admin user", func() error { return identity.DeleteUser(ctx, accountID, ConsoleUsername) }},
	}

	for _, step := range steps {
		if err := step.op(); err != nil {
			if cloud.IsNotFound(err) {
				observer.Printf("%s: already absent", step.name)
				continue
			}
			return fmt.Errorf("%s in account %s: %w", step.name, accountID, err)
		}
		observer.Printf("%s: done", step.name)
	}
	return nil
}
