package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *ProvisionRequest {
	return &ProvisionRequest{
		AccountName:   "sandbox",
		AdminEmail:    "admin@example.com",
		AdminPassword: "correct-horse",
		Region:        "us-east-1",
	}
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ProvisionRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(*ProvisionRequest) {},
		},
		{
			name:    "missing account name",
			mutate:  func(r *ProvisionRequest) { r.AccountName = "" },
			wantErr: "account name is required",
		},
		{
			name:    "account name with spaces",
			mutate:  func(r *ProvisionRequest) { r.AccountName = "my account" },
			wantErr: "invalid account name",
		},
		{
			name:    "account name leading hyphen",
			mutate:  func(r *ProvisionRequest) { r.AccountName = "-sandbox" },
			wantErr: "invalid account name",
		},
		{
			name:    "missing email",
			mutate:  func(r *ProvisionRequest) { r.AdminEmail = "" },
			wantErr: "admin email is required",
		},
		{
			name:    "malformed email",
			mutate:  func(r *ProvisionRequest) { r.AdminEmail = "not-an-email" },
			wantErr: "invalid admin email",
		},
		{
			name:    "missing password",
			mutate:  func(r *ProvisionRequest) { r.AdminPassword = "" },
			wantErr: "admin password is required",
		},
		{
			name:    "short password",
			mutate:  func(r *ProvisionRequest) { r.AdminPassword = "short" },
			wantErr: "at least 8 characters",
		},
		{
			name:    "missing region",
			mutate:  func(r *ProvisionRequest) { r.Region = "  " },
			wantErr: "region is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	req := &ProvisionRequest{AccountName: "sandbox"}
	req.ApplyDefaults()

	assert.Equal(t, DefaultRegion, req.Region)
	assert.Equal(t, DefaultRoleName, req.RoleName)
	assert.Equal(t, ".", req.OutputDir)
	assert.Equal(t, "tf-user-sandbox", req.ProfileName)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	req := &ProvisionRequest{
		AccountName: "sandbox",
		Region:      "eu-west-1",
		RoleName:    "CustomAccessRole",
		OutputDir:   "/tmp/out",
		ProfileName: "my-profile",
	}
	req.ApplyDefaults()

	assert.Equal(t, "eu-west-1", req.Region)
	assert.Equal(t, "CustomAccessRole", req.RoleName)
	assert.Equal(t, "/tmp/out", req.OutputDir)
	assert.Equal(t, "my-profile", req.ProfileName)
}
