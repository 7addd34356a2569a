// Package cloud defines the types and client interfaces for the AWS
// Organizations control plane used during account provisioning.
//
// The interfaces are intentionally narrow so that tests can substitute
// in-memory fakes (see pkg/cloud/fakes) for the real SDK-backed clients
// in internal/platform/awsorg.
package cloud

import "strings"

// AccountStatus is the lifecycle status of a member account as reported
// by the provider.
type AccountStatus string

const (
	StatusActive         AccountStatus = "ACTIVE"
	StatusSuspended      AccountStatus = "SUSPENDED"
	StatusPendingClosure AccountStatus = "PENDING_CLOSURE"
	// StatusOther covers status values introduced by the provider that
	// this tool does not know about.
	StatusOther AccountStatus = "OTHER"
)

// ParseAccountStatus maps a provider-reported status string onto a known
// AccountStatus, falling back to StatusOther for unrecognized values.
func ParseAccountStatus(s string) AccountStatus {
	switch AccountStatus(strings.ToUpper(s)) {
	case StatusActive, StatusSuspended, StatusPendingClosure:
		return AccountStatus(strings.ToUpper(s))
	default:
		return StatusOther
	}
}

// OrganizationAccount is a member account inside the organization.
// Accounts are created and owned by the provider; the ID is the stable
// identity and is never fabricated locally.
type OrganizationAccount struct {
	ID     string
	Name   string
	Email  string
	Status AccountStatus
	Tags   map[string]string
}

// CreationState is the provider-reported state of an account-creation
// request.
type CreationState string

const (
	CreationInProgress CreationState = "IN_PROGRESS"
	CreationSucceeded  CreationState = "SUCCEEDED"
	CreationFailed     CreationState = "FAILED"
)

// CreationStatus is the result of polling an account-creation request.
// AccountID is only set once State is CreationSucceeded; FailureReason
// is only set when State is CreationFailed.
type CreationStatus struct {
	RequestID     string
	State         CreationState
	AccountID     string
	FailureReason string
}

// FailureReasonEmailExists is the provider failure reason reported when
// the requested email is already associated with an account.
const FailureReasonEmailExists = "EMAIL_ALREADY_EXISTS"

// CreateAccountOpts holds the parameters for an account-creation request.
type CreateAccountOpts struct {
	Name  string
	Email string
	// RoleName is the administrative role the provider preconfigures in
	// the new account for cross-account access.
	RoleName string
	Tags     map[string]string
}

// IdentityKind distinguishes the two baseline identities created in a
// new account.
type IdentityKind string

const (
	// ConsoleAdmin is the human-facing identity with console access.
	ConsoleAdmin IdentityKind = "CONSOLE_ADMIN"
	// CLIAutomation is the identity used by Terraform and CI tooling.
	CLIAutomation IdentityKind = "CLI_AUTOMATION"
)

// AccessKey is a programmatic credential pair for a CLIAutomation identity.
type AccessKey struct {
	ID     string
	Secret string
}

// Identity is an IAM principal created inside a member account.
// ConsoleAdmin identities carry HasPassword and never an access key;
// CLIAutomation identities always carry an access key and never a password.
type Identity struct {
	Kind      IdentityKind
	Username  string
	AccountID string

	HasPassword bool
	AccessKey   *AccessKey
}
