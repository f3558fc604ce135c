/*
Package config manages TOML config for spellbee services.

InitConfig handles automatic config file creation and loading with fallback to defaults.
LoadConfig and SaveConfig provide direct fs for runtime changes.
Update allows targeted parameter changes with persistence.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Validate ValidateConfig `toml:"validate"`
	CLI      CliConfig      `toml:"cli"`
}

// ServerConfig has HTTP front-door options.
type ServerConfig struct {
	ListenAddr    string `toml:"listen_addr"`
	MaxCandidates int    `toml:"max_candidates"`
}

// ValidateConfig has validation pipeline options.
type ValidateConfig struct {
	ThrottleDelayMS int `toml:"throttle_delay_ms"`
	HTTPTimeoutMS   int `toml:"http_timeout_ms"`
	HotCacheSize    int `toml:"hot_cache_size"`
}

// ThrottleDelay is ThrottleDelayMS as a time.Duration.
func (v ValidateConfig) ThrottleDelay() time.Duration {
	return time.Duration(v.ThrottleDelayMS) * time.Millisecond
}

// HTTPTimeout is HTTPTimeoutMS as a time.Duration.
func (v ValidateConfig) HTTPTimeout() time.Duration {
	return time.Duration(v.HTTPTimeoutMS) * time.Millisecond
}

// CliConfig holds the interactive solve/validate shell's defaults.
type CliConfig struct {
	DefaultMinLen int    `toml:"default_min_len"`
	DefaultMaxLen int    `toml:"default_max_len"`
	Validator     string `toml:"validator"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:    ":8080",
			MaxCandidates: 5000,
		},
		Validate: ValidateConfig{
			ThrottleDelayMS: 100,
			HTTPTimeoutMS:   10000,
			HotCacheSize:    10000,
		},
		CLI: CliConfig{
			DefaultMinLen: 1,
			DefaultMaxLen: 24,
			Validator:     "free-dictionary",
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return config, nil
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(config)
}

// Update changes the config values and saves to file.
func (c *Config) Update(configPath string, listenAddr *string, maxCandidates *int, throttleDelayMS *int) error {
	if listenAddr != nil {
		c.Server.ListenAddr = *listenAddr
	}
	if maxCandidates != nil {
		c.Server.MaxCandidates = *maxCandidates
	}
	if throttleDelayMS != nil {
		c.Validate.ThrottleDelayMS = *throttleDelayMS
	}
	return SaveConfig(c, configPath)
}
