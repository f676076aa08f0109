package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigFile is the local configuration file looked up in the
// current directory.
const ProjectConfigFile = ".sagalint.json"

// EnvFile is the dotenv file read before SAGALINT_* variables.
const EnvFile = ".env"

// UserConfigDir returns ~/.sagalint.
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".sagalint"), nil
}

// UserConfigPath returns ~/.sagalint/config.json.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
