package config

import (
	"os"

	"github.com/asaapi/plugin-init/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one resolved configuration value with its provenance.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveOptions are the candidate values for one key.
type ResolveOptions struct {
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// DefaultValue is used when nothing else is set.
	DefaultValue string
}

// resolve applies flag > env > config > default precedence for key.
func resolve(key, envName string, opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, os.Getenv(envName)},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveRoot resolves the template root using precedence:
// (1) --root flag, (2) PLUGIN_INIT_ROOT env, (3) config root, (4) parent of
// the executable's directory.
func ResolveRoot(opts ResolveOptions) (ResolvedValue, error) {
	if opts.DefaultValue == "" {
		def, err := DefaultRoot()
		if err != nil {
			return ResolvedValue{}, err
		}
		opts.DefaultValue = def
	}
	return resolve("root", EnvRoot, opts), nil
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PLUGIN_INIT_CONFIG env, (3) <root>/plugin-init.yaml.
// Only flag and env can name the file, since the config may itself move the root.
func ResolveConfigPath(flagValue, root string) ResolvedValue {
	return resolve("config", EnvConfig, ResolveOptions{
		FlagValue:    flagValue,
		DefaultValue: DefaultConfigFile(root),
	})
}

// ResolveLogDir resolves the run log directory using precedence:
// (1) --log-dir flag, (2) PLUGIN_INIT_LOGDIR env, (3) config logDir,
// (4) <root>/logs.
func ResolveLogDir(flagValue, configValue, root string) ResolvedValue {
	return resolve("logDir", EnvLogDir, ResolveOptions{
		FlagValue:    flagValue,
		ConfigValue:  configValue,
		DefaultValue: DefaultLogDir(root),
	})
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
