package config

import (
	"os"
	"path/filepath"
)

// ConfigFileName is the optional configuration file looked up in the template root.
const ConfigFileName = "plugin-init.yaml"

// LogDirName is the run log directory under the template root.
const LogDirName = "logs"

// executable locates the running binary.
var executable = os.Executable

// DefaultRoot returns the parent of the directory holding the executable.
// The tool ships in a subdirectory of the template it instantiates.
func DefaultRoot() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// DefaultConfigFile returns the config file path inside root.
func DefaultConfigFile(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// DefaultLogDir returns the run log directory inside root.
func DefaultLogDir(root string) string {
	return filepath.Join(root, LogDirName)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
