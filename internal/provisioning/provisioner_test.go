package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud/fakes"
)

func createOpts() cloud.CreateAccountOpts {
	return cloud.CreateAccountOpts{
		Name:     "sandbox",
		Email:    "a@example.com",
		RoleName: "OrganizationAccountAccessRole",
		Tags:     map[string]string{"team": "platform"},
	}
}

func TestProvisionSucceedsAfterPolling(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.PollsUntilSucceeded = 2

	p := NewProvisioner(org, testTimeouts(), NopObserver{})
	account, err := p.Provision(context.Background(), createOpts())

	require.NoError(t, err)
	assert.Equal(t, "sandbox", account.Name)
	assert.Equal(t, "a@example.com", account.Email)
	assert.Equal(t, cloud.StatusActive, account.Status)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, 3, org.PollCalls, "two in-progress polls then success")

	// The returned record is the authoritative describe result.
	described, err := org.DescribeAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, described, account)
}

func TestProvisionDuplicateEmail(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.AddAccount(&cloud.OrganizationAccount{
		ID:     "111111111111",
		Name:   "other",
		Email:  "a@example.com",
		Status: cloud.StatusActive,
	})

	p := NewProvisioner(org, testTimeouts(), NopObserver{})
	_, err := p.Provision(context.Background(), createOpts())

	var dupErr *DuplicateEmailError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "a@example.com", dupErr.Email)
}

func TestProvisionProviderFailure(t *testing.T) {
	t.Parallel()

	failing := &failingStatusOrg{FakeOrgClient: fakes.NewFakeOrgClient(), reason: "ACCOUNT_LIMIT_EXCEEDED"}
	p := NewProvisioner(failing, testTimeouts(), NopObserver{})

	_, err := p.Provision(context.Background(), createOpts())

	var failedErr *ProvisioningFailedError
	require.True(t, errors.As(err, &failedErr))
	assert.Equal(t, "ACCOUNT_LIMIT_EXCEEDED", failedErr.Reason)
}

// failingStatusOrg reports every creation request as FAILED with a
// fixed reason.
type failingStatusOrg struct {
	*fakes.FakeOrgClient
	reason string
}

func (f *failingStatusOrg) DescribeCreationStatus(ctx context.Context, requestID string) (*cloud.CreationStatus, error) {
	return &cloud.CreationStatus{
		RequestID:     requestID,
		State:         cloud.CreationFailed,
		FailureReason: f.reason,
	}, nil
}

func TestProvisionTimeoutWhenNeverTerminal(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.NeverSucceed = true

	timeouts := testTimeouts()
	timeouts.CreateTimeout = 30 * time.Millisecond

	p := NewProvisioner(org, timeouts, NopObserver{})

	start := time.Now()
	_, err := p.Provision(context.Background(), createOpts())
	elapsed := time.Since(start)

	var timeoutErr *ProvisioningTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, timeouts.CreateTimeout, timeoutErr.Timeout)
	assert.Less(t, elapsed, time.Second, "polling must terminate promptly after the bound")
	assert.Greater(t, org.PollCalls, 1)
}

func TestProvisionPollFailuresAreNotProvisioningFailures(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.PollsUntilSucceeded = 1
	// Exhaust one full poll-retry budget (2 attempts), then recover.
	org.PollErrs = []error{
		errors.New("throttled"),
		errors.New("throttled"),
	}

	p := NewProvisioner(org, testTimeouts(), NopObserver{})
	account, err := p.Provision(context.Background(), createOpts())

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
}

func TestProvisionCancellation(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.NeverSucceed = true

	timeouts := testTimeouts()
	timeouts.CreateTimeout = time.Minute
	timeouts.PollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	p := NewProvisioner(org, timeouts, NopObserver{})
	_, err := p.Provision(ctx, createOpts())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvisionCreateCallFailure(t *testing.T) {
	t.Parallel()

	org := fakes.NewFakeOrgClient()
	org.CreateErr = errors.New("denied by service control policy")

	p := NewProvisioner(org, testTimeouts(), NopObserver{})
	_, err := p.Provision(context.Background(), createOpts())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initiate account creation")
	assert.Zero(t, org.PollCalls, "no polling after a rejected creation call")
}
