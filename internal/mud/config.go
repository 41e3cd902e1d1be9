package mud

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config is the top-level configuration for mud.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Modules ModulesConfig `toml:"modules"`
}

// ServerConfig defines shared server settings.
type ServerConfig struct {
	Broker    string     `toml:"broker"`
	Identity  string     `toml:"identity"`
	TopicBase string     `toml:"topic_base"`
	LogLevel  string     `toml:"log_level"`
	LogFormat string     `toml:"log_format"`
	LogOutput string     `toml:"log_output"`
	LogSource bool       `toml:"log_source"`
	LogUTC    bool       `toml:"log_utc"`
	LogColor  bool       `toml:"log_color"`
	TLS       TLSConfig  `toml:"tls"`
	Auth      AuthConfig `toml:"auth"`
}

// TLSConfig holds TLS paths for MQTT.
type TLSConfig struct {
	CA   string `toml:"ca"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`
}

// AuthConfig holds MQTT auth credentials.
type AuthConfig struct {
	User string `toml:"user"`
	Pass string `toml:"pass"`
}

// ModulesConfig holds module configurations.
type ModulesConfig struct {
	Browse       BrowseConfig       `toml:"browse"`
	EmbeddedMQTT EmbeddedMQTTConfig `toml:"embedded_mqtt"`
}

// BrowseConfig configures the browse session module.
type BrowseConfig struct {
	Enabled bool   `toml:"enabled"`
	NodeID  string `toml:"node_id"`
	Name    string `toml:"name"`

	DBPath        string `toml:"db_path"`
	DownloadsPath string `toml:"downloads_path"`

	CatalogBaseURL   string `toml:"catalog_base_url"`
	CatalogAPIKey    string `toml:"catalog_api_key"`
	CatalogTimeoutMS int64  `toml:"catalog_timeout_ms"`

	PodcastFeeds     []string `toml:"podcast_feeds"`
	PodcastCacheDir  string   `toml:"podcast_cache_dir"`
	PodcastRefreshMS int64    `toml:"podcast_refresh_ms"`

	SearchLimit   int  `toml:"search_limit"`
	TopSongsLimit int  `toml:"top_songs_limit"`
	PersistQueue  bool `toml:"persist_queue"`
}

// CatalogTimeout returns the catalog request timeout.
func (c BrowseConfig) CatalogTimeout() time.Duration {
	return time.Duration(c.CatalogTimeoutMS) * time.Millisecond
}

// PodcastRefresh returns how long fetched feeds stay fresh.
func (c BrowseConfig) PodcastRefresh() time.Duration {
	return time.Duration(c.PodcastRefreshMS) * time.Millisecond
}

// EmbeddedMQTTConfig configures the embedded MQTT broker.
type EmbeddedMQTTConfig struct {
	Enabled        bool   `toml:"enabled"`
	Listen         string `toml:"listen"`
	AllowAnonymous bool   `toml:"allow_anonymous"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TLSCA          string `toml:"tls_ca"`
	TLSCert        string `toml:"tls_cert"`
	TLSKey         string `toml:"tls_key"`
}

// LoadConfig loads a config file from path.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config location.
func DefaultConfigPath() (string, error) {
	if xdg.ConfigHome == "" {
		return "", errors.New("no config directory")
	}
	return filepath.Join(xdg.ConfigHome, "mu", "mud.toml"), nil
}
