package commands

import (
	"os"
	"path/filepath"

	"github.com/scrimkit/scrim/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands.
	// ConfigErr carries a load or validation failure so that commands like
	// "config validate" can still run and report it.
	Config    *config.Config
	ConfigErr error
}

// RequireConfig returns the loaded config, or the error that prevented
// loading it.
func (f *Flags) RequireConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, f.ConfigErr
	}
	return f.Config, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scrim", "config.yaml")
}
