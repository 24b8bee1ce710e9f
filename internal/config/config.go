// Package config provides Viper-based hierarchical configuration: defaults,
// then an optional config.yaml, then VENTUS_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // never serialized
	} `mapstructure:"ai" yaml:"ai"`

	Server struct {
		Port                int `mapstructure:"port" yaml:"port"`
		ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
		ChunkSize           int `mapstructure:"chunk_size" yaml:"chunk_size"`
	} `mapstructure:"server" yaml:"server"`

	Service struct {
		URL            string `mapstructure:"url" yaml:"url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"service" yaml:"service"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	PreFilter struct {
		WindowDays  int    `mapstructure:"window_days" yaml:"window_days"`
		AnchorsFile string `mapstructure:"anchors_file" yaml:"anchors_file"`
		CitiesFile  string `mapstructure:"cities_file" yaml:"cities_file"`
	} `mapstructure:"prefilter" yaml:"prefilter"`
}

// ServiceTimeout returns the client-side stream timeout.
func (c *Config) ServiceTimeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// AITimeout returns the model call timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// Delimiter returns the CSV field separator as a rune.
func (c *Config) Delimiter() rune {
	runes := []rune(c.CSV.Delimiter)
	if len(runes) != 1 {
		return ','
	}
	return runes[0]
}

// Load initializes Viper and returns the validated configuration.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.travel-enrich")
	v.AddConfigPath(".travel-enrich")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VENTUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine: defaults plus env vars apply.
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 60)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 120)
	v.SetDefault("server.chunk_size", 25)

	v.SetDefault("service.url", "http://localhost:8080")
	v.SetDefault("service.timeout_seconds", 0) // unbounded; caller context governs

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("prefilter.window_days", 2)
	v.SetDefault("prefilter.anchors_file", "")
	v.SetDefault("prefilter.cities_file", "")
}

func validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.Server.ChunkSize < 1 {
		return fmt.Errorf("server.chunk_size must be positive, got: %d", cfg.Server.ChunkSize)
	}
	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}
	if cfg.PreFilter.WindowDays < 0 {
		return fmt.Errorf("prefilter.window_days must not be negative, got: %d", cfg.PreFilter.WindowDays)
	}
	if cfg.AI.Enabled {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if cfg.AI.TimeoutSeconds < 1 || cfg.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", cfg.AI.TimeoutSeconds)
		}
	}
	return nil
}
