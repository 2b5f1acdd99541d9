package app

import (
	"fmt"

	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/observability"
	"github.com/kbukum/fluxkit/samples"
	"github.com/kbukum/fluxkit/version"
)

// ServiceName names the binary, its config directory and its log tag.
const ServiceName = "fluxkit"

// Config is the fluxkit configuration file.
//
//	name: fluxkit
//	logging:
//	  level: info
//	samples:
//	  interval_period: 1s
//	telemetry:
//	  enabled: false
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Samples              samples.Settings     `yaml:"samples" mapstructure:"samples"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Samples.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Samples.Validate(); err != nil {
		return fmt.Errorf("config.samples: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

// Load reads the config file, .env file and environment into a Config.
// Defaults are applied by bootstrap.NewApp.
func Load(opts ...config.LoaderOption) (*Config, error) {
	var cfg Config
	if err := config.LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
