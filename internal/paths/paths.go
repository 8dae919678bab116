package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/tadata-org/tadata-sdk-go/errors"
)

// appDir is the directory name used under the XDG base directories.
const appDir = "tadata"

// credentialsFile is the name of the stored credentials file.
const credentialsFile = "credentials.toml"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used. Idempotent; it
// returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the CLI's config directory: <ConfigHome>/tadata/.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appDir)
}

// CredentialsPath returns the stored credentials file path:
// <ConfigDir>/credentials.toml.
func CredentialsPath() string {
	return filepath.Join(ConfigDir(), credentialsFile)
}
