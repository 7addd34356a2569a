// Package s3 provides the preflight check against the S3 bucket
// namespace used for Terraform state.
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// BucketAPI is the subset of the S3 API the preflight needs.
type BucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Client checks bucket-name availability ahead of rendering, so a
// Terraform apply does not fail late on a taken state-bucket name.
type Client struct {
	s3 BucketAPI
}

// NewClient creates an S3 client from the given profile and region.
func NewClient(ctx context.Context, profile, region string) (*Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{s3: s3.NewFromConfig(cfg)}, nil
}

// NewClientWithAPI wraps an existing API implementation, used in tests.
func NewClientWithAPI(api BucketAPI) *Client {
	return &Client{s3: api}
}

// BucketNameAvailable reports whether the bucket name is unclaimed in
// the global S3 namespace. A bucket owned by anyone, including the
// caller, counts as taken; the tf.bootstrap configuration expects to
// create it.
func (c *Client) BucketNameAvailable(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err == nil {
		return false, nil
	}
	if isNotFoundError(err) {
		return true, nil
	}
	if isForbiddenError(err) {
		// Owned by another AWS account: the name is taken.
		return false, nil
	}
	return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}

// isForbiddenError checks for the access-denied response HeadBucket
// returns when the bucket exists under a different account.
func isForbiddenError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "Forbidden" || code == "AccessDenied" || code == "403"
	}

	return false
}
