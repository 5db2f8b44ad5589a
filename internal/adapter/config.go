package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (DARKROOM_API_ACCESS_KEY, ...)
const EnvPrefix = "DARKROOM"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	History HistoryConfig `mapstructure:"history"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds photo API configuration
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AccessKey string        `mapstructure:"access_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	InitialQuery string `mapstructure:"initial_query"` // Loaded on startup; failures stay hidden
}

// HistoryConfig holds query history settings
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	Dir        string `mapstructure:"dir"` // Empty keeps history in memory only
}

// ViewerConfig holds the external image viewer
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int `mapstructure:"grid_columns"` // 0 fits columns to the terminal width
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.unsplash.com",
			Timeout: 30 * time.Second,
		},
		Search: SearchConfig{
			InitialQuery: "",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 50,
			Dir:        defaultCachePath(),
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			GridColumns: 0,
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
		return filepath.Join(os.Getenv("APPDATA"), "darkroom", "darkroom.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "darkroom", "darkroom.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "darkroom")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "darkroom")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "darkroom", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "darkroom", "cache")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to when none is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper builds a viper instance with defaults and env bindings.
// Defaults must be registered for AutomaticEnv to reach Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.access_key", def.API.AccessKey)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("search.initial_query", def.Search.InitialQuery)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.max_entries", def.History.MaxEntries)
	v.SetDefault("history.dir", def.History.Dir)
	v.SetDefault("viewer.command", def.Viewer.Command)
	v.SetDefault("viewer.args", def.Viewer.Args)
	v.SetDefault("ui.grid_columns", def.UI.GridColumns)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider's conventional variable name also works
	_ = v.BindEnv("api.access_key", EnvPrefix+"_API_ACCESS_KEY", "UNSPLASH_ACCESS_KEY")

	return v
}

// LoadConfigFrom loads configuration from path (or the default search path
// when empty), a .env file in the working directory, and the environment.
func LoadConfigFrom(path string) (*Config, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.API.AccessKey = strings.TrimSpace(cfg.API.AccessKey)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.History.Dir = expandHome(cfg.History.Dir)

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path (the default config file when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.access_key", cfg.API.AccessKey)
	v.Set("api.timeout", cfg.API.Timeout.String())

	v.Set("search.initial_query", cfg.Search.InitialQuery)

	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.max_entries", cfg.History.MaxEntries)
	v.Set("history.dir", cfg.History.Dir)

	v.Set("viewer.command", cfg.Viewer.Command)
	v.Set("viewer.args", cfg.Viewer.Args)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds a credential
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an access key is set
func (c *Config) IsConfigured() bool {
	return c.API.AccessKey != ""
}

// HistoryPath returns the directory for the history store, or "" for memory-only
func (c *Config) HistoryPath() string {
	if !c.History.Enabled {
		return ""
	}
	return c.History.Dir
}

// ClearCache removes the persisted history
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
