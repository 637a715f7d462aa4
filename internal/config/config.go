package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	SnapshotDB   string `koanf:"snapshot_db"`   // path to the container snapshot database
	DryRun       bool   `koanf:"dry_run"`       // plan but never apply moves
	ConfirmApply *bool  `koanf:"confirm_apply"` // require confirmation before applying (default: true)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in snapshot_db
	if cfg.SnapshotDB != "" {
		cfg.SnapshotDB = expandPath(cfg.SnapshotDB)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/crate/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "crate", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ShouldConfirm returns whether applying a plan needs confirmation.
// Defaults to true when the key is absent from the config file.
func (c *Config) ShouldConfirm() bool {
	if c.ConfirmApply == nil {
		return true
	}
	return *c.ConfirmApply
}
