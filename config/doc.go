// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// Viper reads the file first, then every environment variable is bound
// under its nested key variants so FLUXKIT-style names such as
// SAMPLES_INTERVAL_PERIOD override samples.interval_period.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("fluxkit", &cfg, config.WithConfigFile(path))
package config
