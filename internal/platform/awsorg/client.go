// Package awsorg implements the pkg/cloud client interfaces on top of
// the AWS Organizations, STS and IAM APIs.
package awsorg

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client talks to the organization's management account using the
// configured org-root profile. It implements cloud.OrgClient and, via
// role assumption, cloud.IdentityClient.
type Client struct {
	cfg aws.Config
	org *organizations.Client
	sts *sts.Client

	// roleName is assumed in member accounts for IAM operations.
	roleName string

	mu  sync.Mutex
	iam map[string]*iam.Client // accountID -> assumed-role IAM client
}

// NewClient loads shared AWS configuration for the given profile and
// region. An empty profile selects the default credential chain.
func NewClient(ctx context.Context, profile, region, roleName string) (*Client, error) {
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

	return &Client{
		cfg:      cfg,
		org:      organizations.NewFromConfig(cfg),
		sts:      sts.NewFromConfig(cfg),
		roleName: roleName,
		iam:      make(map[string]*iam.Client),
	}, nil
}
