package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tfbootstrap.yaml")
	content := `
profile: org-root
region: eu-central-1
role_name: CustomAccessRole
output_dir: ./out
tags:
  team: platform
  env: sandbox
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "org-root", f.Profile)
	assert.Equal(t, "eu-central-1", f.Region)
	assert.Equal(t, "CustomAccessRole", f.RoleName)
	assert.Equal(t, "./out", f.OutputDir)
	assert.Equal(t, map[string]string{"team": "platform", "env": "sandbox"}, f.Tags)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFileBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: [unclosed"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestMergePrefersRequestValues(t *testing.T) {
	t.Parallel()

	f := &File{
		Profile:   "file-profile",
		Region:    "file-region",
		OutputDir: "file-out",
		Tags:      map[string]string{"env": "file", "team": "platform"},
	}

	req := &ProvisionRequest{
		Profile: "flag-profile",
		Tags:    map[string]string{"env": "flag"},
	}
	f.Merge(req)

	assert.Equal(t, "flag-profile", req.Profile, "flag value wins")
	assert.Equal(t, "file-region", req.Region, "empty field filled from file")
	assert.Equal(t, "file-out", req.OutputDir)
	assert.Equal(t, "flag", req.Tags["env"], "flag tag wins over file tag")
	assert.Equal(t, "platform", req.Tags["team"], "file-only tag merged in")
}
