// Package fakes provides in-memory implementations of the pkg/cloud
// client interfaces for tests.
package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// FakeOrgClient simulates the organization control plane.
type FakeOrgClient struct {
	mu       sync.Mutex
	Accounts map[string]*cloud.OrganizationAccount
	requests map[string]*pendingRequest
	nextID   int64

	// PollsUntilSucceeded is how many IN_PROGRESS polls a creation
	// request reports before reaching SUCCEEDED. Zero means the first
	// poll already reports SUCCEEDED.
	PollsUntilSucceeded int

	// NeverSucceed keeps every request IN_PROGRESS forever, for
	// timeout tests.
	NeverSucceed bool

	// CreateErr, if set, is returned by CreateAccount.
	CreateErr error

	// ListErrs is consumed one per ListAccounts call; a nil entry means
	// that call succeeds. Used to simulate transient read failures.
	ListErrs []error

	// PollErrs is consumed one per DescribeCreationStatus call, same
	// scheme as ListErrs.
	PollErrs []error

	// Call counters for assertions.
	CreateCalls int
	ListCalls   int
	PollCalls   int
}

type pendingRequest struct {
	opts  cloud.CreateAccountOpts
	polls int
	// duplicate marks a request doomed to fail with the provider's
	// duplicate-email reason.
	duplicate bool
}

// NewFakeOrgClient returns an empty fake organization.
func NewFakeOrgClient() *FakeOrgClient {
	return &FakeOrgClient{
		Accounts: make(map[string]*cloud.OrganizationAccount),
		requests: make(map[string]*pendingRequest),
		nextID:   1,
	}
}

// AddAccount seeds an existing member account.
func (f *FakeOrgClient) AddAccount(acct *cloud.OrganizationAccount) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Accounts[acct.ID] = acct
}

func (f *FakeOrgClient) CreateAccount(_ context.Context, opts cloud.CreateAccountOpts) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	req := &pendingRequest{opts: opts}
	for _, acct := range f.Accounts {
		if acct.Email == opts.Email {
			req.duplicate = true
		}
	}

	id := f.nextID
	f.nextID++
	requestID := fmt.Sprintf("car-%08d", id)
	f.requests[requestID] = req
	return requestID, nil
}

func (f *FakeOrgClient) DescribeCreationStatus(_ context.Context, requestID string) (*cloud.CreationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PollCalls++
	if len(f.PollErrs) > 0 {
		err := f.PollErrs[0]
		f.PollErrs = f.PollErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	req, ok := f.requests[requestID]
	if !ok {
		return nil, cloud.NewAPIError(cloud.CodeNotFound, "no creation request %s", requestID)
	}

	status := &cloud.CreationStatus{RequestID: requestID, State: cloud.CreationInProgress}
	if f.NeverSucceed {
		return status, nil
	}

	if req.polls < f.PollsUntilSucceeded {
		req.polls++
		return status, nil
	}

	if req.duplicate {
		status.State = cloud.CreationFailed
		status.FailureReason = cloud.FailureReasonEmailExists
		return status, nil
	}

	accountID := f.newAccountIDLocked()
	f.Accounts[accountID] = &cloud.OrganizationAccount{
		ID:     accountID,
		Name:   req.opts.Name,
		Email:  req.opts.Email,
		Status: cloud.StatusActive,
		Tags:   req.opts.Tags,
	}
	status.State = cloud.CreationSucceeded
	status.AccountID = accountID
	return status, nil
}

func (f *FakeOrgClient) DescribeAccount(_ context.Context, accountID string) (*cloud.OrganizationAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if acct, ok := f.Accounts[accountID]; ok {
		return acct, nil
	}
	return nil, cloud.NewAPIError(cloud.CodeNotFound, "no account %s", accountID)
}

func (f *FakeOrgClient) ListAccounts(_ context.Context) ([]*cloud.OrganizationAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if len(f.ListErrs) > 0 {
		err := f.ListErrs[0]
		f.ListErrs = f.ListErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	accounts := make([]*cloud.OrganizationAccount, 0, len(f.Accounts))
	for _, acct := range f.Accounts {
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func (f *FakeOrgClient) newAccountIDLocked() string {
	id := f.nextID
	f.nextID++
	return fmt.Sprintf("%012d", 100000000000+id)
}

// FakeUser is the state a FakeIdentityClient tracks per user.
type FakeUser struct {
	AccountID    string
	Username     string
	AdminPolicy  bool
	LoginProfile bool
	AccessKeys   []cloud.AccessKey
}

// FakeIdentityClient simulates IAM inside member accounts.
type FakeIdentityClient struct {
	mu     sync.Mutex
	Users  map[string]*FakeUser // keyed accountID/username
	nextID int64

	// NotReadyCalls makes the first N calls of any kind fail with
	// AccessDenied, simulating a freshly created account whose access
	// role is not assumable yet.
	NotReadyCalls int

	// Errors injected per operation; returned once the not-ready window
	// has passed.
	CreateUserErr   error
	AttachPolicyErr error
	LoginProfileErr error
	CreateKeyErr    error

	// Ops records every successful mutating call in order, as
	// "op:accountID/username" strings.
	Ops []string
}

// NewFakeIdentityClient returns an empty fake IAM.
func NewFakeIdentityClient() *FakeIdentityClient {
	return &FakeIdentityClient{
		Users:  make(map[string]*FakeUser),
		nextID: 1,
	}
}

func userKey(accountID, username string) string {
	return accountID + "/" + username
}

// User returns the tracked state for a user, or nil.
func (f *FakeIdentityClient) User(accountID, username string) *FakeUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Users[userKey(accountID, username)]
}

func (f *FakeIdentityClient) notReadyLocked() error {
	if f.NotReadyCalls > 0 {
		f.NotReadyCalls--
		return cloud.NewAPIError(cloud.CodeAccessDenied, "access role not assumable yet")
	}
	return nil
}

func (f *FakeIdentityClient) recordLocked(op, accountID, username string) {
	f.Ops = append(f.Ops, fmt.Sprintf("%s:%s/%s", op, accountID, username))
}

func (f *FakeIdentityClient) CreateUser(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.notReadyLocked(); err != nil {
		return err
	}
	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}
	key := userKey(accountID, username)
	if _, ok := f.Users[key]; ok {
		return cloud.NewAPIError(cloud.CodeAlreadyExists, "user %s exists", username)
	}
	f.Users[key] = &FakeUser{AccountID: accountID, Username: username}
	f.recordLocked("create-user", accountID, username)
	return nil
}

func (f *FakeIdentityClient) AttachAdminPolicy(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.notReadyLocked(); err != nil {
		return err
	}
	if f.AttachPolicyErr != nil {
		return f.AttachPolicyErr
	}
	user, ok := f.Users[userKey(accountID, username)]
	if !ok {
		return cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	user.AdminPolicy = true
	f.recordLocked("attach-policy", accountID, username)
	return nil
}

func (f *FakeIdentityClient) CreateLoginProfile(_ context.Context, accountID, username, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.notReadyLocked(); err != nil {
		return err
	}
	if f.LoginProfileErr != nil {
		return f.LoginProfileErr
	}
	user, ok := f.Users[userKey(accountID, username)]
	if !ok {
		return cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	if user.LoginProfile {
		return cloud.NewAPIError(cloud.CodeAlreadyExists, "login profile for %s exists", username)
	}
	user.LoginProfile = true
	f.recordLocked("create-login-profile", accountID, username)
	return nil
}

func (f *FakeIdentityClient) CreateAccessKey(_ context.Context, accountID, username string) (*cloud.AccessKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.notReadyLocked(); err != nil {
		return nil, err
	}
	if f.CreateKeyErr != nil {
		return nil, f.CreateKeyErr
	}
	user, ok := f.Users[userKey(accountID, username)]
	if !ok {
		return nil, cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	id := f.nextID
	f.nextID++
	key := cloud.AccessKey{
		ID:     fmt.Sprintf("AKIAFAKE%08d", id),
		Secret: fmt.Sprintf("secret-%08d", id),
	}
	user.AccessKeys = append(user.AccessKeys, key)
	f.recordLocked("create-access-key", accountID, username)
	return &key, nil
}

func (f *FakeIdentityClient) DeleteAccessKeys(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.Users[userKey(accountID, username)]
	if !ok {
		return cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	user.AccessKeys = nil
	f.recordLocked("delete-access-keys", accountID, username)
	return nil
}

func (f *FakeIdentityClient) DeleteLoginProfile(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.Users[userKey(accountID, username)]
	if !ok || !user.LoginProfile {
		return cloud.NewAPIError(cloud.CodeNotFound, "no login profile for %s", username)
	}
	user.LoginProfile = false
	f.recordLocked("delete-login-profile", accountID, username)
	return nil
}

func (f *FakeIdentityClient) DetachAdminPolicy(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.Users[userKey(accountID, username)]
	if !ok {
		return cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	user.AdminPolicy = false
	f.recordLocked("detach-policy", accountID, username)
	return nil
}

func (f *FakeIdentityClient) DeleteUser(_ context.Context, accountID, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := userKey(accountID, username)
	if _, ok := f.Users[key]; !ok {
		return cloud.NewAPIError(cloud.CodeNotFound, "user %s not found", username)
	}
	delete(f.Users, key)
	f.recordLocked("delete-user", accountID, username)
	return nil
}
