package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Path of the lvm binary, /sbin/lvm when empty. Environment variables
	// are expanded.
	LVMPath string `yaml:"lvm_path,omitempty"`
	// How long a single lvm invocation may run, e.g. "30s"
	CommandTimeout string `yaml:"command_timeout,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	// Query the segments of every RAID volume on refresh
	SegmentDetail bool `yaml:"segment_detail,omitempty"`

	timeout time.Duration
}

var defaultConfig = Config{
	LVMPath:        "/sbin/lvm",
	CommandTimeout: "30s",
	LogLevel:       "info",
}

// Candidates are tried in order when no path is given.
func Candidates() []string {
	return []string{
		"/etc/lvmctl/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/lvmctl/config.yaml"),
	}
}

// Load reads the config file at path. With an empty path the first existing
// candidate is used, and the defaults when there is none.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Parse reads a config document without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	c.LVMPath = expandEnv(c.LVMPath)
	if c.LVMPath == "" {
		c.LVMPath = defaultConfig.LVMPath
	}
	if c.CommandTimeout == "" {
		c.CommandTimeout = defaultConfig.CommandTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultConfig.LogLevel
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil {
		return fmt.Errorf("command_timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("command_timeout: negative duration %s", c.CommandTimeout)
	}
	c.timeout = d
	return nil
}

// Timeout is the parsed command_timeout; 0 disables the limit.
func (c *Config) Timeout() time.Duration {
	return c.timeout
}
