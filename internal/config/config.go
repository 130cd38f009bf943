// Package config defines the configuration structure for the call-record
// service.
//
// Configuration is organized into logical sections (Server, Store, Backup)
// plus top-level logging settings. Values are resolved in order: struct
// defaults, then an optional YAML config file, then CALLSTORE_* environment
// variables, then command-line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

const envPrefix = "CALLSTORE"

type Configuration struct {
	Server    Server `mapstructure:"server"`
	Store     Store  `mapstructure:"store"`
	Backup    Backup `mapstructure:"backup"`
	LogLevel  string `mapstructure:"log_level" default:"info"`
	LogFormat string `mapstructure:"log_format" default:"console"`
}

type Server struct {
	Mode     string `mapstructure:"mode" default:"dev"`
	HTTPPort int    `mapstructure:"http_port" default:"8000"`
}

type Store struct {
	DataFile string `mapstructure:"data_file" default:"calls.xlsx"`
}

type Backup struct {
	Enabled  bool          `mapstructure:"enabled" default:"false"`
	Folder   string        `mapstructure:"folder"`
	Interval time.Duration `mapstructure:"interval" default:"1h"`
	Keep     int           `mapstructure:"keep" default:"5"`
}

// keys lists every configuration key so environment variables resolve even
// when the key is absent from the config file.
var keys = []string{
	"server.mode",
	"server.http_port",
	"store.data_file",
	"backup.enabled",
	"backup.folder",
	"backup.interval",
	"backup.keep",
	"log_level",
	"log_format",
}

// Load resolves the configuration. configFile may be empty, in which case an
// optional callstore.yaml in the working directory is used.
func Load(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("callstore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Configuration) Validate() error {
	if c.Server.Mode != ServerModeDev && c.Server.Mode != ServerModeProd {
		return fmt.Errorf("server.mode must be %q or %q, got %q", ServerModeDev, ServerModeProd, c.Server.Mode)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range", c.Server.HTTPPort)
	}
	if c.Store.DataFile == "" {
		return fmt.Errorf("store.data_file must not be empty")
	}
	if c.Backup.Enabled {
		if c.Backup.Folder == "" {
			return fmt.Errorf("backup.folder is required when backup is enabled")
		}
		if c.Backup.Interval <= 0 {
			return fmt.Errorf("backup.interval must be positive")
		}
	}
	return nil
}

// DebugMap returns the effective configuration as a map safe for structured
// logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server.mode":      c.Server.Mode,
		"server.http_port": c.Server.HTTPPort,
		"store.data_file":  c.Store.DataFile,
		"backup.enabled":   c.Backup.Enabled,
		"backup.folder":    c.Backup.Folder,
		"backup.interval":  c.Backup.Interval.String(),
		"backup.keep":      c.Backup.Keep,
		"log_level":        c.LogLevel,
		"log_format":       c.LogFormat,
	}
}
