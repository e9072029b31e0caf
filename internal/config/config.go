package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	Filters FiltersConfig `mapstructure:"filters"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ProjectConfig holds project defaults
type ProjectConfig struct {
	DefaultRoot string `mapstructure:"default_root"` // Opened at startup when no path argument is given
	RecentLimit int    `mapstructure:"recent_limit"` // Recent projects remembered
	ScanTimeout string `mapstructure:"scan_timeout"` // Go duration, e.g. "10m"
}

// FiltersConfig holds the initial list ordering
type FiltersConfig struct {
	SortBy    string `mapstructure:"sort_by"`    // name, file_size, dimensions, tag_count, rating
	SortOrder string `mapstructure:"sort_order"` // asc or desc
}

// CacheConfig holds the local store location
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps the store in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const defaultScanTimeout = 10 * time.Minute

var envKeyReplacer = strings.NewReplacer(".", "_")

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			RecentLimit: 10,
			ScanTimeout: "10m",
		},
		Filters: FiltersConfig{
			SortBy:    "name",
			SortOrder: "asc",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lorastudio", "lorastudio.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lorastudio", "lorastudio.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lorastudio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lorastudio")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "lorastudio", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lorastudio", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return load(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from an explicit file
func LoadConfigFrom(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	return load(v)
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(paths) > 0 {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	// Environment variable overrides, e.g. LORASTUDIO_LOGGING_LEVEL
	v.SetEnvPrefix("LORASTUDIO")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can see it during Unmarshal
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("project.default_root", cfg.Project.DefaultRoot)
	v.SetDefault("project.recent_limit", cfg.Project.RecentLimit)
	v.SetDefault("project.scan_timeout", cfg.Project.ScanTimeout)
	v.SetDefault("filters.sort_by", cfg.Filters.SortBy)
	v.SetDefault("filters.sort_order", cfg.Filters.SortOrder)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig writes cfg to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, filepath.Join(defaultConfigPath(), "config.yaml"))
}

// SaveConfigTo writes cfg to file, creating its directory
func SaveConfigTo(cfg *Config, file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("project.default_root", cfg.Project.DefaultRoot)
	v.Set("project.recent_limit", cfg.Project.RecentLimit)
	v.Set("project.scan_timeout", cfg.Project.ScanTimeout)

	v.Set("filters.sort_by", cfg.Filters.SortBy)
	v.Set("filters.sort_order", cfg.Filters.SortOrder)

	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ScanTimeoutDuration parses Project.ScanTimeout, falling back to 10m
func (c *Config) ScanTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Project.ScanTimeout)
	if err != nil || d <= 0 {
		return defaultScanTimeout
	}
	return d
}

// GetCachePath returns the default cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
