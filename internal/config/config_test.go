package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("defaults.scheme", "http")
	v.SetDefault("defaults.host", "localhost")
	v.SetDefault("defaults.port", 9200)
	v.SetDefault("defaults.path", "/")
	v.SetDefault("client.api_path", "_sql")
	v.SetDefault("client.timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	return v
}

func TestNew(t *testing.T) {
	cfg := New(newTestViper())

	assert.Equal(t, "http", cfg.Defaults.Scheme)
	assert.Equal(t, "localhost", cfg.Defaults.Host)
	assert.Equal(t, 9200, cfg.Defaults.Port)
	assert.Equal(t, "/", cfg.Defaults.Path)
	assert.Equal(t, "_sql", cfg.Client.APIPath)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNew_PanicsOnInvalidConfig(t *testing.T) {
	v := newTestViper()
	v.Set("defaults.scheme", "ftp")

	require.Panics(t, func() { New(v) })
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Defaults: DefaultsConfig{Scheme: "http", Host: "localhost", Port: 9200, Path: "/"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.Defaults.Scheme = "ftp" },
			wantErr: "defaults.scheme",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Defaults.Host = "" },
			wantErr: "defaults.host",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Defaults.Port = 70000 },
			wantErr: "defaults.port",
		},
		{
			name:    "relative path",
			mutate:  func(c *Config) { c.Defaults.Path = "base" },
			wantErr: "defaults.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultsConfig_Endpoint(t *testing.T) {
	tests := []struct {
		name     string
		defaults DefaultsConfig
		want     string
	}{
		{
			name:     "minimal defaults",
			defaults: DefaultsConfig{Scheme: "http", Host: "localhost", Port: 9200, Path: "/"},
			want:     "http://localhost:9200/",
		},
		{
			name: "full defaults",
			defaults: DefaultsConfig{
				Scheme: "https", Host: "fallback", Port: 9243,
				Path: "/base", Query: "def=1", Fragment: "dfrag",
			},
			want: "https://fallback:9243/base?def=1#dfrag",
		},
		{
			name:     "IPv6 host",
			defaults: DefaultsConfig{Scheme: "http", Host: "::1", Port: 9200, Path: "/"},
			want:     "http://[::1]:9200/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := tt.defaults.Endpoint()
			require.NoError(t, err)
			assert.Equal(t, tt.want, endpoint.String())
		})
	}
}
