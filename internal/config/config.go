package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database   DatabaseConfig
	UI         UIConfig
	Moderation ModerationConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	GraphWidth     int    `mapstructure:"graph_width"`
	GraphHeight    int    `mapstructure:"graph_height"`
}

// ModerationConfig gates the in-app review queue.
type ModerationConfig struct {
	Enabled bool
}

// Load reads configuration from file and env. Env var overrides use prefix DEALSCOPE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "dealscope", "dealscope.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.graph_width", 100)
	v.SetDefault("ui.graph_height", 60)
	v.SetDefault("moderation.enabled", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DEALSCOPE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dealscope"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DEALSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.GraphWidth < 20 {
		c.UI.GraphWidth = 20
	}
	if c.UI.GraphHeight < 10 {
		c.UI.GraphHeight = 10
	}
	return c, nil
}
