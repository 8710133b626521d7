package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when the server port is not configured.
const DefaultPort = 16181

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from the
// first config.yml found and stores it in Config.
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// LoadAppConfigFrom loads and validates the configuration at path.
func LoadAppConfigFrom(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and environment overrides, and validates.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if key := os.Getenv("GRAPHHOPPER_API_KEY"); key != "" {
		cfg.GraphHopper.APIKey = key
	}
	if token := os.Getenv("SHELTER_TOKEN"); token != "" {
		cfg.Shelter.Token = token
	}
	if cfg.GraphHopper.Profile == "" {
		cfg.GraphHopper.Profile = "foot"
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
