package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for plugin-init configuration.
const envPrefix = "PLUGIN_INIT"

// Environment variables read directly by the resolvers.
const (
	EnvRoot   = envPrefix + "_ROOT"
	EnvConfig = envPrefix + "_CONFIG"
	EnvLogDir = envPrefix + "_LOGDIR"
)

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("root", EnvRoot)
	_ = v.BindEnv("logDir", EnvLogDir)
	_ = v.BindEnv("atomic", envPrefix+"_ATOMIC")
	_ = v.BindEnv("log.timestamps", envPrefix+"_LOG_TIMESTAMPS")

	return &Loader{v: v}
}

// Load loads configuration from configFile. A missing file is not an error;
// environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		expandedPath, err := ExpandPath(configFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}

		l.v.SetConfigFile(expandedPath)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Timestamps stays nil unless some source sets it.
	if l.v.IsSet("log.timestamps") {
		ts := l.v.GetBool("log.timestamps")
		cfg.Log.Timestamps = &ts
	}

	return &cfg, nil
}

// ConfigFileUsed returns the file the loader read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
