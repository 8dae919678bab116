// Package credentials stores and retrieves the API key used to authenticate
// against the deployment service.
//
// Credentials live in a TOML file under the user's config directory
// (~/.config/tadata/credentials.toml on Linux), written atomically with
// owner-only permissions. The file holds the key and, optionally, a base URL
// override:
//
//	api_key = "td_live_..."
//	base_url = "https://api.dev.tadata.com"
package credentials

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/paths"
	"github.com/tadata-org/tadata-sdk-go/pkg/fileutil"
)

// FilePerm is the permission for the credentials file (owner read/write only).
const FilePerm = 0o600

// ErrNoCredentials indicates no stored credentials were found.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is the stored authentication material.
type Credentials struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url,omitempty"`
}

// Load reads credentials from the default location.
// Returns ErrNoCredentials when the file does not exist or holds no key.
func Load() (*Credentials, error) {
	return LoadFrom(paths.CredentialsPath())
}

// LoadFrom reads credentials from path.
func LoadFrom(path string) (*Credentials, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoCredentials
		}
		return nil, errors.Wrap(err, "reading credentials file")
	}

	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrapf(err, "parsing credentials file %s", path)
	}
	if creds.APIKey == "" {
		return nil, ErrNoCredentials
	}
	return &creds, nil
}

// Save writes credentials to the default location, creating the config
// directory if needed.
func Save(creds *Credentials) error {
	return SaveTo(paths.CredentialsPath(), creds)
}

// SaveTo writes credentials to path atomically with owner-only permissions.
func SaveTo(path string, creds *Credentials) error {
	if creds == nil || creds.APIKey == "" {
		return errors.New("an API key is required to save credentials")
	}

	data, err := toml.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encoding credentials")
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteFile(path, data, FilePerm)
}

// Remove deletes the stored credentials. Removing credentials that do not
// exist is not an error.
func Remove() error {
	return RemoveFrom(paths.CredentialsPath())
}

// RemoveFrom deletes the credentials file at path.
func RemoveFrom(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing credentials file")
	}
	return nil
}
