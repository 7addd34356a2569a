package provisioning

import (
	"fmt"
	"time"
)

// TransientLookupError reports that the read-only account lookup kept
// failing after its retry budget was exhausted. Safe to re-run.
type TransientLookupError struct {
	Err error
}

func (e *TransientLookupError) Error() string {
	return fmt.Sprintf("account lookup failed after retries: %v", e.Err)
}

func (e *TransientLookupError) Unwrap() error {
	return e.Err
}

// DuplicateEmailError reports a provider-side rejection because the
// email is already associated with an account. The operator must pick
// a new email, or re-run so the resolver can find the existing account
// if it belongs to this organization.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %s is already associated with an account", e.Email)
}

// ProvisioningTimeoutError reports that account creation did not reach
// a terminal state within the configured bound. The provider may still
// complete the creation; a re-run resumes via the resolver.
type ProvisioningTimeoutError struct {
	RequestID string
	Timeout   time.Duration
}

func (e *ProvisioningTimeoutError) Error() string {
	return fmt.Sprintf("account creation request %s did not complete within %v", e.RequestID, e.Timeout)
}

// ProvisioningFailedError reports a provider-reported creation failure
// other than a duplicate email (e.g. policy denial, billing limit).
type ProvisioningFailedError struct {
	RequestID string
	Reason    string
}

func (e *ProvisioningFailedError) Error() string {
	return fmt.Sprintf("account creation request %s failed: %s", e.RequestID, e.Reason)
}

// Identity bootstrap step names carried by IdentityBootstrapError.
const (
	StepConsoleAdmin       = "console-admin"
	StepCLIAutomation      = "cli-automation"
	StepPersistCredentials = "persist-credentials"
)

// IdentityBootstrapError reports a failed identity bootstrap step with
// enough context for manual follow-up. Identities created by earlier
// steps are left in place.
type IdentityBootstrapError struct {
	AccountID string
	Step      string
	// Exists distinguishes an already-exists rejection (under the Fail
	// policy) from other failures.
	Exists bool
	Err    error
}

func (e *IdentityBootstrapError) Error() string {
	if e.Exists {
		return fmt.Sprintf("identity bootstrap step %s in account %s: identity already exists", e.Step, e.AccountID)
	}
	return fmt.Sprintf("identity bootstrap step %s in account %s failed: %v", e.Step, e.AccountID, e.Err)
}

func (e *IdentityBootstrapError) Unwrap() error {
	return e.Err
}
