package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = ".tock"
	configFileName = "config.yaml"

	// EnvConfigPath overrides the config file location
	EnvConfigPath = "TOCK_CONFIG"
	// EnvDebug forces debug logging when set to any value
	EnvDebug = "TOCK_DEBUG"
)

// Config holds user settings for tock
type Config struct {
	DBPath       string
	LogFile      string
	LogLevel     string
	TickInterval time.Duration
}

type yamlConfig struct {
	DBPath       string `yaml:"db_path"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`
	TickInterval string `yaml:"tick_interval"`
}

// Default returns the settings used when no config file exists
func Default(homeDir string) Config {
	dir := filepath.Join(homeDir, appDirName)
	return Config{
		DBPath:       filepath.Join(dir, "tock.db"),
		LogFile:      filepath.Join(dir, "tock.log"),
		LogLevel:     "info",
		TickInterval: time.Second,
	}
}

// Path returns the config file location: TOCK_CONFIG or ~/.tock/config.yaml
func Path() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(homeDir, appDirName, configFileName), nil
}

// Defaults returns Default for the current user's home directory
func Defaults() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	return Default(homeDir), nil
}

// Load reads the config file at Path. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	defaults, err := Defaults()
	if err != nil {
		return Config{}, err
	}

	cfg, err := LoadFile(path, defaults)
	if err != nil {
		return cfg, err
	}
	if os.Getenv(EnvDebug) != "" {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto defaults
func LoadFile(path string, defaults Config) (Config, error) {
	cfg := defaults

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := apply(&cfg, fileData, filepath.Dir(path)); err != nil {
		return defaults, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	out, err := yaml.Marshal(yamlConfig{
		DBPath:       cfg.DBPath,
		LogFile:      cfg.LogFile,
		LogLevel:     cfg.LogLevel,
		TickInterval: cfg.TickInterval.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func apply(cfg *Config, fileData yamlConfig, baseDir string) error {
	if fileData.DBPath != "" {
		cfg.DBPath = resolve(baseDir, fileData.DBPath)
	}
	if fileData.LogFile != "" {
		cfg.LogFile = resolve(baseDir, fileData.LogFile)
	}
	if fileData.LogLevel != "" {
		cfg.LogLevel = fileData.LogLevel
	}
	if fileData.TickInterval != "" {
		d, err := time.ParseDuration(fileData.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval %q: %w", fileData.TickInterval, err)
		}
		if d < 50*time.Millisecond {
			return fmt.Errorf("tick_interval %s is too small (minimum 50ms)", d)
		}
		cfg.TickInterval = d
	}
	return nil
}

// relative paths in the config file are relative to the file itself
func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
