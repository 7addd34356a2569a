package awsorg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// CreateAccount submits an asynchronous account-creation request.
func (c *Client) CreateAccount(ctx context.Context, opts cloud.CreateAccountOpts) (string, error) {
	tags := make([]orgtypes.Tag, 0, len(opts.Tags))
	for k, v := range opts.Tags {
		tags = append(tags, orgtypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}

	out, err := c.org.CreateAccount(ctx, &organizations.CreateAccountInput{
		AccountName:            aws.String(opts.Name),
		Email:                  aws.String(opts.Email),
		RoleName:               aws.String(opts.RoleName),
		IamUserAccessToBilling: orgtypes.IAMUserAccessToBillingAllow,
		Tags:                   tags,
	})
	if err != nil {
		return "", translate(err, "failed to initiate account creation")
	}

	return aws.ToString(out.CreateAccountStatus.Id), nil
}

// DescribeCreationStatus polls an account-creation request.
func (c *Client) DescribeCreationStatus(ctx context.Context, requestID string) (*cloud.CreationStatus, error) {
	out, err := c.org.DescribeCreateAccountStatus(ctx, &organizations.DescribeCreateAccountStatusInput{
		CreateAccountRequestId: aws.String(requestID),
	})
	if err != nil {
		return nil, translate(err, "failed to describe creation status")
	}

	status := out.CreateAccountStatus
	result := &cloud.CreationStatus{
		RequestID: requestID,
		AccountID: aws.ToString(status.AccountId),
	}

	switch status.State {
	case orgtypes.CreateAccountStateSucceeded:
		result.State = cloud.CreationSucceeded
	case orgtypes.CreateAccountStateFailed:
		result.State = cloud.CreationFailed
		result.FailureReason = string(status.FailureReason)
	default:
		result.State = cloud.CreationInProgress
	}

	return result, nil
}

// DescribeAccount fetches the authoritative account record.
func (c *Client) DescribeAccount(ctx context.Context, accountID string) (*cloud.OrganizationAccount, error) {
	out, err := c.org.DescribeAccount(ctx, &organizations.DescribeAccountInput{
		AccountId: aws.String(accountID),
	})
	if err != nil {
		return nil, translate(err, "failed to describe account %s", accountID)
	}

	return convertAccount(out.Account), nil
}

// ListAccounts returns every member account in the organization.
func (c *Client) ListAccounts(ctx context.Context) ([]*cloud.OrganizationAccount, error) {
	var accounts []*cloud.OrganizationAccount

	paginator := organizations.NewListAccountsPaginator(c.org, &organizations.ListAccountsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translate(err, "failed to list accounts")
		}
		for i := range page.Accounts {
			accounts = append(accounts, convertAccount(&page.Accounts[i]))
		}
	}

	return accounts, nil
}

func convertAccount(acct *orgtypes.Account) *cloud.OrganizationAccount {
	if acct == nil {
		return nil
	}
	return &cloud.OrganizationAccount{
		ID:     aws.ToString(acct.Id),
		Name:   aws.ToString(acct.Name),
		Email:  aws.ToString(acct.Email),
		Status: cloud.ParseAccountStatus(string(acct.Status)),
	}
}

var _ cloud.OrgClient = (*Client)(nil)
