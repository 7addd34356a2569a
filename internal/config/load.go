package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when no
// config path is given.
const DefaultConfigFile = "tfbootstrap.yaml"

// File holds the optional settings a tfbootstrap.yaml may carry.
// Flags take precedence over file values; the file is a convenience for
// stable per-organization settings like tags and the org-root profile.
type File struct {
	Profile         string            `mapstructure:"profile"`
	Region          string            `mapstructure:"region"`
	RoleName        string            `mapstructure:"role_name"`
	OutputDir       string            `mapstructure:"output_dir"`
	CredentialsPath string            `mapstructure:"credentials_path"`
	Tags            map[string]string `mapstructure:"tags"`
}

// LoadFile reads and parses settings from a YAML file.
func LoadFile(path string) (*File, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var f File
	if err := mapstructure.Decode(rawConfig, &f); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &f, nil
}

// FindConfigFile returns the default config path if it exists in the
// working directory, or empty when there is nothing to load.
func FindConfigFile() string {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Merge overlays file values onto request fields that are still empty.
func (f *File) Merge(req *ProvisionRequest) {
	if req.Profile == "" {
		req.Profile = f.Profile
	}
	if req.Region == "" {
		req.Region = f.Region
	}
	if req.RoleName == "" {
		req.RoleName = f.RoleName
	}
	if req.OutputDir == "" {
		req.OutputDir = f.OutputDir
	}
	if req.CredentialsPath == "" {
		req.CredentialsPath = f.CredentialsPath
	}
	if len(f.Tags) > 0 {
		if req.Tags == nil {
			req.Tags = make(map[string]string, len(f.Tags))
		}
		for k, v := range f.Tags {
			if _, ok := req.Tags[k]; !ok {
				req.Tags[k] = v
			}
		}
	}
}
