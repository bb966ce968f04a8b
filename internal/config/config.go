package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fbkclanna/depot/internal/lock"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/vcs"
	"github.com/fbkclanna/depot/internal/workspace"
)

// FileName is the config file base name, without extension.
const FileName = "depotrc"

// EnvPrefix prefixes environment variables, as in DEPOT_VCS.
const EnvPrefix = "DEPOT"

// Config holds resolved settings.
type Config struct {
	WorkspaceDir string `mapstructure:"workspace_dir"`
	ManifestFile string `mapstructure:"manifest_file"`
	LockFile     string `mapstructure:"lock_file"`
	VCS          string `mapstructure:"vcs"`
	EagerLock    bool   `mapstructure:"eager_lock"`
	LogLevel     string `mapstructure:"log_level"`
	Select       string `mapstructure:"select"`
	MetricsFile  string `mapstructure:"metrics_file"`

	// File is the config file used, if any.
	File string `mapstructure:"-"`
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"vcs":          "vcs",
	"log-level":    "log_level",
	"metrics-file": "metrics_file",
	"select":       "select",
	"eager-lock":   "eager_lock",
}

// Options configures Load.
type Options struct {
	// Fs is searched for config files. Defaults to the OS filesystem.
	Fs afero.Fs
	// Root is the project directory, searched first for a config file.
	Root string
	// Home overrides the user home directory.
	Home string
	// Flags are bound when they define a known flag.
	Flags *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace_dir", workspace.DefaultDirName)
	v.SetDefault("manifest_file", manifest.FileName(manifest.FormatYAML))
	v.SetDefault("lock_file", lock.FileName)
	v.SetDefault("vcs", string(vcs.KindGit))
	v.SetDefault("eager_lock", false)
	v.SetDefault("log_level", "warn")
	v.SetDefault("select", "")
	v.SetDefault("metrics_file", "")
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}
	setDefaults(v)

	v.SetConfigName(FileName)
	if opts.Root != "" {
		v.AddConfigPath(opts.Root)
	}
	home := opts.Home
	if home == "" {
		if h, err := homedir.Dir(); err == nil {
			home = h
		} else {
			log.WithError(err).Debug("cannot resolve home directory")
		}
	}
	if home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "depot"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.WithField("file", cfg.File).Debug("using config file")
	}
	return &cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	if _, err := vcs.ParseKind(c.VCS); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := manifest.FormatOf(c.ManifestFile); err != nil {
		return fmt.Errorf("config: manifest_file: %w", err)
	}
	if c.WorkspaceDir == "" || filepath.IsAbs(c.WorkspaceDir) {
		return fmt.Errorf("config: workspace_dir must be a relative directory name, got %q", c.WorkspaceDir)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
