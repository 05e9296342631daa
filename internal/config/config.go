// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in console output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the plugin-init configuration.
// Loaded from plugin-init.yaml in the template root, overridden by
// PLUGIN_INIT_* environment variables.
type Config struct {
	// Root is the template root directory.
	// Env: PLUGIN_INIT_ROOT, Default: parent of the executable's directory
	Root string `mapstructure:"root" yaml:"root,omitempty"`

	// LogDir is where the daily run log is appended.
	// Env: PLUGIN_INIT_LOGDIR, Default: <root>/logs
	LogDir string `mapstructure:"logDir" yaml:"logDir,omitempty"`

	// Atomic rolls back every change when a component fails.
	// Env: PLUGIN_INIT_ATOMIC, Default: false
	Atomic bool `mapstructure:"atomic" yaml:"atomic,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}
