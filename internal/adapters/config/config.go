package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config holds CLI configuration from config.toml.
type Config struct {
	Broker    string            `toml:"broker"`
	Identity  string            `toml:"identity"`
	TopicBase string            `toml:"topic_base"`
	Aliases   map[string]string `toml:"aliases"`
	Defaults  Defaults          `toml:"defaults"`
}

// Defaults defines default selector values.
type Defaults struct {
	Browse string `toml:"browse"`
}

// Load loads config.toml if present. Missing file returns an empty config.
func Load() (Config, error) {
	return LoadFile(Path())
}

// Path returns the CLI config location under the XDG config home.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "mu", "config.toml")
}

// LoadFile loads a specific config file. Missing file returns an empty config.
func LoadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{Aliases: map[string]string{}}, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}
	return cfg, nil
}
