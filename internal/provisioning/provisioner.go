package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/tfbootstrap/tfbootstrap/internal/config"
	"github.com/tfbootstrap/tfbootstrap/internal/util/retry"
	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// RequestState is a creation request's position in the state machine.
type RequestState string

const (
	// StateRequested means the creation call was accepted and a request
	// ID captured.
	StateRequested RequestState = "REQUESTED"
	// StateInProgress means the provider reports work ongoing.
	StateInProgress RequestState = "IN_PROGRESS"
	// StateSucceeded is terminal: the provider confirmed the account ID.
	StateSucceeded RequestState = "SUCCEEDED"
	// StateFailed is terminal: the provider reported an unrecoverable
	// condition.
	StateFailed RequestState = "FAILED"
)

// creationRequest is the transient orchestration record for one
// creation request. It lives only for the duration of Provision and is
// discarded once a terminal state is reached.
type creationRequest struct {
	requestID     string
	targetName    string
	targetEmail   string
	state         RequestState
	lastPolledAt  time.Time
	failureReason string
}

// Provisioner drives the create-and-poll state machine until the
// account reaches a terminal state.
type Provisioner struct {
	org      cloud.OrgClient
	timeouts *config.Timeouts
	observer Observer

	// Injectable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewProvisioner builds a provisioner with the polling configuration
// from the given timeouts.
func NewProvisioner(org cloud.OrgClient, timeouts *config.Timeouts, observer Observer) *Provisioner {
	return &Provisioner{
		org:      org,
		timeouts: timeouts,
		observer: observer,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Provision creates the account and polls until a terminal state.
// Call only after the resolver returned ErrAccountNotFound.
//
// The returned record comes from a separate describe call: the creation
// status is not assumed to carry a complete account record.
func (p *Provisioner) Provision(ctx context.Context, opts cloud.CreateAccountOpts) (*cloud.OrganizationAccount, error) {
	requestID, err := p.org.CreateAccount(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initiate account creation: %w", err)
	}

	req := &creationRequest{
		requestID:   requestID,
		targetName:  opts.Name,
		targetEmail: opts.Email,
		state:       StateRequested,
	}
	p.observer.Event(Event{Type: EventAccountCreating, Resource: requestID,
		Fields: map[string]string{"name": opts.Name}})

	status, err := p.poll(ctx, req)
	if err != nil {
		return nil, err
	}

	account, err := p.org.DescribeAccount(ctx, status.AccountID)
	if err != nil {
		return nil, fmt.Errorf("account %s created but describe failed: %w", status.AccountID, err)
	}

	p.observer.Event(Event{Type: EventAccountCreated, Resource: account.ID,
		Fields: map[string]string{"name": account.Name}})
	return account, nil
}

// poll advances the state machine until SUCCEEDED, FAILED, or the
// overall timeout. Individual poll-call failures are retried a bounded
// number of times and then treated as a failed poll, not a failed
// provisioning: the request may still be progressing provider-side.
func (p *Provisioner) poll(ctx context.Context, req *creationRequest) (*cloud.CreationStatus, error) {
	deadline := p.now().Add(p.timeouts.CreateTimeout)
	pollPolicy := retry.NewPolicy(p.timeouts.PollRetryAttempts, p.timeouts.PollInterval/4, p.timeouts.PollInterval, 2.0)

	for {
		var status *cloud.CreationStatus
		err := pollPolicy.Do(ctx, func() error {
			var pollErr error
			status, pollErr = p.org.DescribeCreationStatus(ctx, req.requestID)
			return pollErr
		})
		req.lastPolledAt = p.now()

		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("polling cancelled: %w", ctx.Err())
			}
			p.observer.Printf("status poll for %s failed, will poll again: %v", req.requestID, err)
		} else {
			switch status.State {
			case cloud.CreationSucceeded:
				req.state = StateSucceeded
				return status, nil

			case cloud.CreationFailed:
				req.state = StateFailed
				req.failureReason = status.FailureReason
				if status.FailureReason == cloud.FailureReasonEmailExists {
					return nil, &DuplicateEmailError{Email: req.targetEmail}
				}
				return nil, &ProvisioningFailedError{RequestID: req.requestID, Reason: status.FailureReason}

			default:
				req.state = StateInProgress
				p.observer.Event(Event{Type: EventAccountPolling, Resource: req.requestID})
			}
		}

		if p.now().Add(p.timeouts.PollInterval).After(deadline) {
			return nil, &ProvisioningTimeoutError{RequestID: req.requestID, Timeout: p.timeouts.CreateTimeout}
		}
		if err := p.sleep(ctx, p.timeouts.PollInterval); err != nil {
			return nil, fmt.Errorf("polling cancelled: %w", err)
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
