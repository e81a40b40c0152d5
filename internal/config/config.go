package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for pind.
type Config struct {
	API     APIConfig     `toml:"api"`
	Poll    PollConfig    `toml:"poll"`
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	YouTube YouTubeConfig `toml:"youtube"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type PollConfig struct {
	IntervalSeconds int `toml:"interval_seconds"`
	MaxRetries      int `toml:"max_retries"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type YouTubeConfig struct {
	// MetadataLookup toggles the title/thumbnail lookup. When off (or when
	// the lookup fails) placeholders derived from the video ID are used.
	MetadataLookup bool `toml:"metadata_lookup"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		API:     APIConfig{BaseURL: "http://localhost:8000"},
		Poll:    PollConfig{IntervalSeconds: 10, MaxRetries: 3},
		Server:  ServerConfig{Host: "localhost", Port: 8090},
		Data:    DataConfig{Dir: "data"},
		YouTube: YouTubeConfig{MetadataLookup: true},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error. The PIND_API_BASE_URL environment
// variable overrides the configured base URL.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(cfg)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PIND_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
}
