package config

import (
	"fmt"

	"github.com/spf13/viper"

	"soroswap-cli/pkg/api"
)

// Config holds the application configuration
type Config struct {
	APIKey     string
	BaseURL    string
	Network    string
	SignerSeed string
}

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".soroswap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("base_url", api.DefaultBaseURL)
	viper.SetDefault("network", api.DefaultNetwork)

	// Read from environment variables
	viper.SetEnvPrefix("SOROSWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		APIKey:     viper.GetString("api_key"),
		BaseURL:    viper.GetString("base_url"),
		Network:    viper.GetString("network"),
		SignerSeed: viper.GetString("signer_seed"),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not found. Please set SOROSWAP_API_KEY environment variable or create a .soroswap.yaml config file")
	}

	return cfg, nil
}

// API returns the client configuration carried by cfg.
func (c *Config) API() api.Config {
	return api.Config{
		APIKey:         c.APIKey,
		BaseURL:        c.BaseURL,
		DefaultNetwork: c.Network,
	}
}
