package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"connstring/internal/domain/valueobject"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Client   ClientConfig   `mapstructure:"client"`
	Log      LogConfig      `mapstructure:"log"`
}

// DefaultsConfig holds the fallback endpoint components applied to
// connection strings that omit them.
type DefaultsConfig struct {
	Scheme   string `mapstructure:"scheme"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Path     string `mapstructure:"path"`
	Query    string `mapstructure:"query"`
	Fragment string `mapstructure:"fragment"`
}

// Endpoint assembles the configured defaults into an endpoint value.
func (d DefaultsConfig) Endpoint() (valueobject.Endpoint, error) {
	var b strings.Builder
	b.WriteString(d.Scheme)
	b.WriteString("://")
	b.WriteString(valueobject.FormatHostPort(d.Host, d.Port))
	b.WriteString(d.Path)
	if d.Query != "" {
		b.WriteString("?")
		b.WriteString(d.Query)
	}
	if d.Fragment != "" {
		b.WriteString("#")
		b.WriteString(d.Fragment)
	}
	endpoint, err := valueobject.ParseEndpoint(b.String())
	if err != nil {
		return valueobject.Endpoint{}, fmt.Errorf("invalid default endpoint configuration: %w", err)
	}
	return endpoint, nil
}

// ClientConfig holds settings for the connection-configuration layer.
type ClientConfig struct {
	// APIPath is the path segment appended to resolved endpoints to reach
	// the query API (e.g. "_sql").
	APIPath string        `mapstructure:"api_path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New creates a new Config instance from Viper.
func New(v *viper.Viper) *Config {
	var config Config

	// Unmarshal configuration
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	return &config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Defaults.Scheme != "http" && c.Defaults.Scheme != "https" {
		return fmt.Errorf("defaults.scheme must be http or https, got %q", c.Defaults.Scheme)
	}

	if c.Defaults.Host == "" {
		return errors.New("defaults.host is required")
	}

	if c.Defaults.Port < 1 || c.Defaults.Port > 65535 {
		return errors.New("defaults.port must be between 1 and 65535")
	}

	if !strings.HasPrefix(c.Defaults.Path, "/") {
		return fmt.Errorf("defaults.path must be absolute, got %q", c.Defaults.Path)
	}

	return nil
}
