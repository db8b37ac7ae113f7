package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. CROPPRICES_SERVER_URL
const EnvPrefix = "CROPPRICES"

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version" mapstructure:"version"`
	Server  ServerConfig  `toml:"server" mapstructure:"server"`
	Predict PredictConfig `toml:"predict" mapstructure:"predict"`
	Catalog CatalogConfig `toml:"catalog" mapstructure:"catalog"`
	UI      UISettings    `toml:"ui" mapstructure:"ui"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
}

// ServerConfig points at the prediction service
type ServerConfig struct {
	URL     string        `toml:"url" mapstructure:"url"`
	Timeout time.Duration `toml:"timeout" mapstructure:"timeout"` // 0 waits indefinitely
}

// PredictConfig holds the contextual defaults sent with every prediction
type PredictConfig struct {
	Rainfall    float64 `toml:"rainfall" mapstructure:"rainfall"`
	Yields      float64 `toml:"yields" mapstructure:"yields"`
	MonthOffset int     `toml:"month_offset" mapstructure:"month_offset"`
}

// CatalogConfig optionally replaces the built-in crop list
type CatalogConfig struct {
	Crops []string `toml:"crops" mapstructure:"crops"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns int           `toml:"columns" mapstructure:"columns"`
	Splash  time.Duration `toml:"splash" mapstructure:"splash"`
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `toml:"file" mapstructure:"file"`
	Level string `toml:"level" mapstructure:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service using the user config directory
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// DefaultPath returns ~/.config/cropprices/config.toml or the platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cropprices", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the bound config file. A missing file is not an error; defaults
// and environment overrides still apply.
func (cs *configService) Load() (*Config, error) {
	return load(cs.filePath, false)
}

// Save writes the configuration to the bound file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return load(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := Validate(config); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func load(path string, mustExist bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if mustExist {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("predict.rainfall", d.Predict.Rainfall)
	v.SetDefault("predict.yields", d.Predict.Yields)
	v.SetDefault("predict.month_offset", d.Predict.MonthOffset)
	v.SetDefault("catalog.crops", d.Catalog.Crops)
	v.SetDefault("ui.columns", d.UI.Columns)
	v.SetDefault("ui.splash", d.UI.Splash)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate rejects configurations the application cannot run with
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(cfg.Server.URL) == "" {
		return errors.New("server.url must not be empty")
	}
	if !strings.HasPrefix(cfg.Server.URL, "http://") && !strings.HasPrefix(cfg.Server.URL, "https://") {
		return fmt.Errorf("server.url must be an http(s) URL, got %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout < 0 {
		return errors.New("server.timeout must not be negative")
	}
	if cfg.UI.Columns < 1 {
		return fmt.Errorf("ui.columns must be at least 1, got %d", cfg.UI.Columns)
	}
	if cfg.UI.Splash < 0 {
		return errors.New("ui.splash must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			URL: "http://127.0.0.1:5000",
		},
		Predict: PredictConfig{
			Rainfall:    100,
			Yields:      1450,
			MonthOffset: 6,
		},
		Catalog: CatalogConfig{
			Crops: []string{},
		},
		UI: UISettings{
			Columns: 3,
			Splash:  3 * time.Second,
		},
		Log: LogConfig{
			File:  "cropprices.log",
			Level: "info",
		},
	}
}
