package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/tadata-org/tadata-sdk-go/errors"
	"github.com/tadata-org/tadata-sdk-go/internal/paths"
)

// AppName is the application name used for config file naming and the
// environment variable prefix.
const AppName = "tadata"

// Config represents the top-level configuration structure.
type Config struct {
	APIKey    string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Dev       bool          `mapstructure:"dev" yaml:"dev"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogFormat string        `mapstructure:"log_format" yaml:"log_format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support: TADATA_API_KEY, TADATA_BASE_URL, ...
	viper.SetEnvPrefix("TADATA")
	viper.AutomaticEnv()

	// Defaults. Registering every key here also makes the matching
	// environment variables visible to Unmarshal.
	viper.SetDefault("api_key", "")
	viper.SetDefault("base_url", "")
	viper.SetDefault("dev", false)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("log_format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errs[0]
	}

	return &cfg, nil
}
