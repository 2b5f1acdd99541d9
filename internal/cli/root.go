// Package cli is the fluxkit command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/internal/app"
)

// Execute runs the root command and exits 1 on error.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configFile string
	envFile    string
	logLevel   string
	logFormat  string
}

// loadConfig reads the configuration and applies the logging flags on top.
func (o *globalOptions) loadConfig() (*app.Config, error) {
	var opts []config.LoaderOption
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		opts = append(opts, config.WithEnvFile(o.envFile))
	}

	cfg, err := app.Load(opts...)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "fluxkit",
		Short:         "fluxkit runs reactive pipeline samples over in-memory name records",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./cmd/fluxkit/config.yml, ./config/config.yml or ./config.yml)")
	flags.StringVar(&opts.envFile, "env-file", "", ".env file loaded before environment overrides")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console, pretty or json")

	cmd.AddCommand(listCmd(), runCmd(opts), versionCmd())
	return cmd
}
