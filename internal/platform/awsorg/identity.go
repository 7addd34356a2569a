package awsorg

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// adminPolicyArn grants full administrative capability scoped to the
// member account the policy is attached in.
const adminPolicyArn = "arn:aws:iam::aws:policy/AdministratorAccess"

// iamFor returns an IAM client operating inside the member account,
// assuming the organization access role on first use. Sessions are
// cached per account for the process lifetime; they comfortably outlive
// a single bootstrap sequence.
func (c *Client) iamFor(ctx context.Context, accountID string) (*iam.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.iam[accountID]; ok {
		return client, nil
	}

	roleArn := fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, c.roleName)
	out, err := c.sts.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String("tfbootstrap-identity-setup"),
	})
	if err != nil {
		return nil, translate(err, "failed to assume %s", roleArn)
	}

	creds := out.Credentials
	cfg := c.cfg.Copy()
	cfg.Credentials = credentials.NewStaticCredentialsProvider(
		aws.ToString(creds.AccessKeyId),
		aws.ToString(creds.SecretAccessKey),
		aws.ToString(creds.SessionToken),
	)

	client := iam.NewFromConfig(cfg)
	c.iam[accountID] = client
	return client, nil
}

// CreateUser creates an IAM user in the member account.
func (c *Client) CreateUser(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.CreateUser(ctx, &iam.CreateUserInput{UserName: aws.String(username)})
	if err != nil {
		return translate(err, "failed to create user %s", username)
	}
	return nil
}

// AttachAdminPolicy attaches AdministratorAccess to the user.
func (c *Client) AttachAdminPolicy(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.AttachUserPolicy(ctx, &iam.AttachUserPolicyInput{
		UserName:  aws.String(username),
		PolicyArn: aws.String(adminPolicyArn),
	})
	if err != nil {
		return translate(err, "failed to attach admin policy to %s", username)
	}
	return nil
}

// CreateLoginProfile gives the user console access with the supplied
// password.
func (c *Client) CreateLoginProfile(ctx context.Context, accountID, username, password string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.CreateLoginProfile(ctx, &iam.CreateLoginProfileInput{
		UserName:              aws.String(username),
		Password:              aws.String(password),
		PasswordResetRequired: false,
	})
	if err != nil {
		return translate(err, "failed to create login profile for %s", username)
	}
	return nil
}

// CreateAccessKey issues a programmatic credential pair for the user.
func (c *Client) CreateAccessKey(ctx context.Context, accountID, username string) (*cloud.AccessKey, error) {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out, err := client.CreateAccessKey(ctx, &iam.CreateAccessKeyInput{UserName: aws.String(username)})
	if err != nil {
		return nil, translate(err, "failed to create access key for %s", username)
	}
	return &cloud.AccessKey{
		ID:     aws.ToString(out.AccessKey.AccessKeyId),
		Secret: aws.ToString(out.AccessKey.SecretAccessKey),
	}, nil
}

// DeleteAccessKeys removes every access key the user holds.
func (c *Client) DeleteAccessKeys(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	out, err := client.ListAccessKeys(ctx, &iam.ListAccessKeysInput{UserName: aws.String(username)})
	if err != nil {
		return translate(err, "failed to list access keys for %s", username)
	}
	for _, md := range out.AccessKeyMetadata {
		_, err := client.DeleteAccessKey(ctx, &iam.DeleteAccessKeyInput{
			UserName:    aws.String(username),
			AccessKeyId: md.AccessKeyId,
		})
		if err != nil {
			return translate(err, "failed to delete access key %s", aws.ToString(md.AccessKeyId))
		}
	}
	return nil
}

// DeleteLoginProfile removes the user's console access.
func (c *Client) DeleteLoginProfile(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.DeleteLoginProfile(ctx, &iam.DeleteLoginProfileInput{UserName: aws.String(username)})
	if err != nil {
		return translate(err, "failed to delete login profile for %s", username)
	}
	return nil
}

// DetachAdminPolicy detaches AdministratorAccess from the user.
func (c *Client) DetachAdminPolicy(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.DetachUserPolicy(ctx, &iam.DetachUserPolicyInput{
		UserName:  aws.String(username),
		PolicyArn: aws.String(adminPolicyArn),
	})
	if err != nil {
		return translate(err, "failed to detach admin policy from %s", username)
	}
	return nil
}

// DeleteUser removes the IAM user.
func (c *Client) DeleteUser(ctx context.Context, accountID, username string) error {
	client, err := c.iamFor(ctx, accountID)
	if err != nil {
		return err
	}
	_, err = client.DeleteUser(ctx, &iam.DeleteUserInput{UserName: aws.String(username)})
	if err != nil {
		return translate(err, "failed to delete user %s", username)
	}
	return nil
}

var _ cloud.IdentityClient = (*Client)(nil)
