// Package config resolves runtime settings from the dispatch.toml config
// file, DISPATCH_* environment overrides, and built-in defaults, in that
// order of increasing precedence for env over file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "dispatch.toml"

// Config carries every tunable the tool reads.
type Config struct {
	DataDir   string `mapstructure:"data_dir" toml:"data_dir"`
	DBPath    string `mapstructure:"db_path" toml:"db_path"`
	BackupDir string `mapstructure:"backup_dir" toml:"backup_dir"`
	PhotoDir  string `mapstructure:"photo_dir" toml:"photo_dir"`
	ImportDir string `mapstructure:"import_dir" toml:"import_dir"`
	LogPath   string `mapstructure:"log_path" toml:"log_path"`

	BusyTimeoutMS        int `mapstructure:"busy_timeout_ms" toml:"busy_timeout_ms"`
	CacheCapacity        int `mapstructure:"cache_capacity" toml:"cache_capacity"`
	BadgeSize            int `mapstructure:"badge_size" toml:"badge_size"`
	TrainingGapThreshold int `mapstructure:"training_gap_threshold" toml:"training_gap_threshold"`
	PollIntervalSec      int `mapstructure:"poll_interval_sec" toml:"poll_interval_sec"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "dispatch-data")
	v.SetDefault("db_path", "")
	v.SetDefault("backup_dir", "")
	v.SetDefault("photo_dir", "")
	v.SetDefault("import_dir", "")
	v.SetDefault("log_path", "")
	v.SetDefault("busy_timeout_ms", 5000)
	v.SetDefault("cache_capacity", 500)
	v.SetDefault("badge_size", 150)
	v.SetDefault("training_gap_threshold", 2)
	v.SetDefault("poll_interval_sec", 5)
}

// Load reads configuration. An empty path looks for dispatch.toml in the
// working directory; a missing file is not an error and leaves defaults
// and environment overrides in force.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".toml"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDerivedPaths()
	return cfg, nil
}

// applyDerivedPaths fills unset paths relative to the data directory.
func (c *Config) applyDerivedPaths() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "dispatch.db")
	}
	if c.BackupDir == "" {
		c.BackupDir = filepath.Join(c.DataDir, "backups")
	}
	if c.PhotoDir == "" {
		c.PhotoDir = filepath.Join(c.DataDir, "photos")
	}
	if c.ImportDir == "" {
		c.ImportDir = filepath.Join(c.DataDir, "imports")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, "dispatch.log")
	}
}

// EnsureDirs creates the directories the tool writes into.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.DataDir, c.BackupDir, c.PhotoDir, c.ImportDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// ImportLogPath is where the bounded import log lives.
func (c *Config) ImportLogPath() string {
	return filepath.Join(c.ImportDir, "import_log.json")
}

// WriteDefault writes a fully populated config file with current values,
// used by `dispatch init` to seed dispatch.toml.
func (c *Config) WriteDefault(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
