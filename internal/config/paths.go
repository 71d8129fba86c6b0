// ABOUTME: Config file resolution for termctl
// ABOUTME: Flag path first, then $TERMCTL_CONFIG, then <UserConfigDir>/termctl/config.yaml

package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names the environment variable holding a config path.
	EnvConfigPath = "TERMCTL_CONFIG"

	appDirName     = "termctl"
	configFileName = "config.yaml"
)

// Dir returns the user config directory for termctl, or "" if the
// platform has none.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, appDirName)
}

// DefaultFile returns <UserConfigDir>/termctl/config.yaml, or "".
func DefaultFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFileName)
}

// Path picks the config file: flagPath when set, then $TERMCTL_CONFIG,
// then DefaultFile.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultFile()
}
