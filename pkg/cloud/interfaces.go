package cloud

import "context"

// Interfaces for the organization control plane to allow substitution in tests.

// OrgClient defines the organization-level operations needed to resolve
// and create member accounts.
type OrgClient interface {
	// CreateAccount submits an asynchronous account-creation request and
	// returns the provider-assigned request ID.
	CreateAccount(ctx context.Context, opts CreateAccountOpts) (string, error)

	// DescribeCreationStatus polls the state of a creation request.
	DescribeCreationStatus(ctx context.Context, requestID string) (*CreationStatus, error)

	// DescribeAccount fetches the authoritative account record by ID.
	DescribeAccount(ctx context.Context, accountID string) (*OrganizationAccount, error)

	// ListAccounts returns every member account visible to the caller.
	ListAccounts(ctx context.Context) ([]*OrganizationAccount, error)
}

// IdentityClient defines the IAM operations performed inside a member
// account. Implementations are expected to handle cross-account access
// (e.g. assuming the organization access role) internally.
type IdentityClient interface {
	CreateUser(ctx context.Context, accountID, username string) error
	AttachAdminPolicy(ctx context.Context, accountID, username string) error
	CreateLoginProfile(ctx context.Context, accountID, username, password string) error
	CreateAccessKey(ctx context.Context, accountID, username string) (*AccessKey, error)

	// Teardown operations used by the reset flow.
	DeleteAccessKeys(ctx context.Context, accountID, username string) error
	DeleteLoginProfile(ctx context.Context, accountID, username string) error
	DetachAdminPolicy(ctx context.Context, accountID, username string) error
	DeleteUser(ctx context.Context, accountID, username string) error
}
