// Package config provides configuration management for the tadata CLI.
//
// This package handles loading and validating the CLI's own configuration
// file. It is distinct from stored credentials, which live in the
// credentials package with tighter file permissions.
//
// # Configuration File
//
// The default configuration file location is <XDG_CONFIG_HOME>/tadata/config.yaml
// (the current directory is searched first). The file uses YAML format:
//
//	base_url: https://api.dev.tadata.com  # optional
//	dev: true                              # optional
//	timeout: 45s                           # optional, default 30s
//	log_format: json                       # optional, text or json
//
// Every key can also be set through the environment with a TADATA_ prefix,
// for example TADATA_API_KEY or TADATA_BASE_URL.
//
// # Loading Configuration
//
// Use [Load] with an empty path to search the default locations, falling
// back to defaults when no file exists:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Passing an explicit path makes a missing file an error.
//
// # Validation
//
// Loaded configurations are validated automatically; [Validate] can also be
// called directly. Validation failures are [FieldError] values naming the
// offending field.
package config
