// Package config provides configuration structures and loading for jsonfix.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the per-directory config file.
	FileName = "jsonfix.yaml"
	// UserFileName is the name of the config file in the home directory.
	UserFileName = ".jsonfix.yaml"
	// EnvPrefix prefixes environment variables which override config keys.
	EnvPrefix = "JSONFIX"
)

// Config holds the complete jsonfix configuration.
type Config struct {
	APIBase      string        `yaml:"api_base"`
	Email        string        `yaml:"email"`
	Charset      string        `yaml:"charset"`
	Timeout      time.Duration `yaml:"timeout"`
	Editor       string        `yaml:"editor"`
	Listen       string        `yaml:"listen"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBase:      "http://localhost:8080/api",
		Charset:      "",
		Timeout:      30 * time.Second,
		Listen:       "127.0.0.1:8000",
		MaxBodyBytes: 4 << 20,
	}
}

// Validate checks the fields needed to talk to the remote API.
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("api_base is required")
	}
	u, err := url.Parse(c.APIBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base must be an absolute http(s) URL: %s", c.APIBase)
	}
	if c.Email == "" {
		return fmt.Errorf("email is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// loadConfigFromFile reads one YAML config file.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs returns base with every non-zero field of override applied.
func mergeConfigs(base, override *Config) *Config {
	merged := *base
	if override == nil {
		return &merged
	}
	if override.APIBase != "" {
		merged.APIBase = override.APIBase
	}
	if override.Email != "" {
		merged.Email = override.Email
	}
	if override.Charset != "" {
		merged.Charset = override.Charset
	}
	if override.Timeout != 0 {
		merged.Timeout = override.Timeout
	}
	if override.Editor != "" {
		merged.Editor = override.Editor
	}
	if override.Listen != "" {
		merged.Listen = override.Listen
	}
	if override.MaxBodyBytes != 0 {
		merged.MaxBodyBytes = override.MaxBodyBytes
	}
	return &merged
}

// applyOverrides sets fields from lookup, which maps a viper key such as
// "api-base" to a value. Empty values are ignored.
func applyOverrides(cfg *Config, lookup func(string) string) error {
	if v := lookup("api-base"); v != "" {
		cfg.APIBase = v
	}
	if v := lookup("email"); v != "" {
		cfg.Email = v
	}
	if v := lookup("charset"); v != "" {
		cfg.Charset = v
	}
	if v := lookup("editor"); v != "" {
		cfg.Editor = v
	}
	if v := lookup("listen"); v != "" {
		cfg.Listen = v
	}
	if v := lookup("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("bad timeout %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// LoadEnvFile loads KEY=value pairs from a .env file in dir, if present.
// Variables already set in the environment win.
func LoadEnvFile(dir string) error {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	log.Debugf("loading environment from %s", envFile)
	return godotenv.Load(envFile)
}

// Load builds the configuration: defaults, then ~/.jsonfix.yaml, then
// ./jsonfix.yaml, then configFile if given, then environment variables and
// flags bound to viper.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, UserFileName))
	}
	candidates = append(candidates, FileName)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded config from %s", path)
		cfg = mergeConfigs(cfg, fileCfg)
	}

	if configFile != "" {
		fileCfg, err := loadConfigFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("cannot load config file: %w", err)
		}
		log.Debugf("loaded config from %s", configFile)
		cfg = mergeConfigs(cfg, fileCfg)
	}

	if err := applyOverrides(cfg, viper.GetString); err != nil {
		return nil, err
	}
	return cfg, nil
}
