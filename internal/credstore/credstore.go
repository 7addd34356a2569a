// Package credstore persists CLI automation credentials as profiles in
// an AWS shared-credentials file.
//
// The file is read-merge-written: profiles belonging to other accounts
// or written by other tools are preserved.
package credstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// Store is a keyed persistent mapping from profile name to access key.
type Store interface {
	Put(profileName string, key cloud.AccessKey) error
	Has(profileName string) (bool, error)
}

// FileStore writes profiles to an ini-format shared-credentials file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given credentials file.
// An empty path selects the default ~/.aws/credentials.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".aws", "credentials")
	}
	return &FileStore{path: path}, nil
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return s.path
}

// Put writes or replaces the named profile with the given access key.
func (s *FileStore) Put(profileName string, key cloud.AccessKey) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}

	section := cfg.Section(profileName)
	section.Key("aws_access_key_id").SetValue(key.ID)
	section.Key("aws_secret_access_key").SetValue(key.Secret)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := cfg.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// Credentials files must not be group or world readable.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict credentials file mode: %w", err)
	}
	return nil
}

// Has reports whether the named profile exists with a populated key id.
func (s *FileStore) Has(profileName string) (bool, error) {
	cfg, err := s.load()
	if err != nil {
		return false, err
	}
	section, err := cfg.GetSection(profileName)
	if err != nil {
		return false, nil
	}
	return section.HasKey("aws_access_key_id"), nil
}

func (s *FileStore) load() (*ini.File, error) {
	// LooseLoad tolerates a missing file, which is the common case on a
	// fresh machine.
	cfg, err := ini.LooseLoad(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", s.path, err)
	}
	return cfg, nil
}
