package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ASSISTANT_BOT_STORAGE_FILE
const EnvPrefix = "ASSISTANT_BOT"

// Config represents application configuration
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// StorageConfig represents address book persistence configuration
type StorageConfig struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // "json", "yaml" or empty to infer from extension
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // Empty logs warnings to stderr
	Level string `mapstructure:"level"`
}

// ReminderConfig represents birthday reminder daemon configuration
type ReminderConfig struct {
	DailyTime  string `mapstructure:"daily_time"` // HH:MM, local time
	WindowDays int    `mapstructure:"window_days"`
	SystemTray bool   `mapstructure:"system_tray"` // Windows only
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.file", "address_book.json")
	v.SetDefault("storage.format", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("reminder.daily_time", "09:00")
	v.SetDefault("reminder.window_days", 7)
	v.SetDefault("reminder.system_tray", false)
}

// Load loads configuration from file. A missing file is not an error:
// defaults and environment overrides still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.assistant-bot")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.File == "" {
		return fmt.Errorf("storage.file is required")
	}
	switch c.Storage.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("storage.format must be 'json' or 'yaml', got '%s'", c.Storage.Format)
	}

	if _, _, err := c.Reminder.ParseDailyTime(); err != nil {
		return err
	}
	if c.Reminder.WindowDays < 0 || c.Reminder.WindowDays > 365 {
		return fmt.Errorf("reminder.window_days must be between 0 and 365")
	}

	return nil
}

// ParseDailyTime returns the configured reminder hour and minute
func (c *ReminderConfig) ParseDailyTime() (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(c.DailyTime, "%d:%d", &h, &m); err != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("reminder.daily_time must be HH:MM, got '%s'", c.DailyTime)
	}
	return h, m, nil
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Storage.File = os.ExpandEnv(c.Storage.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
