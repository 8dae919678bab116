// Package paths resolves the filesystem locations the CLI reads and writes:
// the config directory and the stored credentials file.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux paths follow XDG conventions
// (~/.config/tadata); macOS and Windows use their native equivalents.
//
//	paths.ConfigDir()       // <XDG_CONFIG_HOME>/tadata/
//	paths.CredentialsPath() // <XDG_CONFIG_HOME>/tadata/credentials.toml
//
// Directories holding credentials are created private (0700); use
// [EnsureDir] before writing under them.
package paths
