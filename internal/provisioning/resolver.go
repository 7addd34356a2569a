package provisioning

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/util/retry"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// ErrAccountNotFound signals that no account matches the requested
// name and email. The provisioner is called exactly in this case.
var ErrAccountNotFound = errors.New("account not found")

// Resolver performs the idempotent lookup that makes re-runs safe:
// an existing account is resumed instead of created twice.
type Resolver struct {
	org      cloud.OrgClient
	policy   retry.Policy
	observer Observer
}

// NewResolver builds a resolver with the lookup retry policy from the
// given timeouts.
func NewResolver(org cloud.OrgClient, timeouts *config.Timeouts, observer Observer) *Resolver {
	return &Resolver{
		org:      org,
		policy:   retry.NewPolicy(timeouts.LookupMaxAttempts, timeouts.LookupInitialDelay, 5*time.Second, 2.0),
		observer: observer,
	}
}

// Resolve looks up an account by email, with the name as a secondary
// sanity check. Email is the primary key: the provider guarantees at
// most one account per email. A name match whose email differs is
// NotFound — an account is never silently reused for a different
// email, to avoid cross-wiring identities.
//
// Read-only. Transient list failures are retried with bounded backoff;
// exhaustion surfaces as *TransientLookupError.
func (r *Resolver) Resolve(ctx context.Context, name, email string) (*cloud.OrganizationAccount, error) {
	var accounts []*cloud.OrganizationAccount

	err := r.policy.Do(ctx, func() error {
		var listErr error
		accounts, listErr = r.org.ListAccounts(ctx)
		return listErr
	})
	if err != nil {
		return nil, &TransientLookupError{Err: err}
	}

	for _, acct := range accounts {
		if !strings.EqualFold(acct.Email, email) {
			continue
		}
		if acct.Name != name {
			r.observer.Printf("account %s matches email %s under a different name %q (requested %q)",
				acct.ID, email, acct.Name, name)
		}
		r.observer.Event(Event{Type: EventAccountExists, Resource: acct.ID, Message: "resuming existing account"})
		return acct, nil
	}

	return nil, ErrAccountNotFound
}
