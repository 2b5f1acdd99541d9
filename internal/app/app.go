// Package app wires the fluxkit binary: configuration, the telemetry
// component and the sample runner, inside a bootstrap lifecycle.
package app

import (
	"context"

	"github.com/kbukum/fluxkit/bootstrap"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/observability"
	"github.com/kbukum/fluxkit/samples"
)

// Run executes the named samples with cfg. The telemetry component is
// started first and flushed after the last sample. Results are returned
// even when the run stops early.
func Run(ctx context.Context, cfg *Config, names []string, opts ...bootstrap.Option) ([]samples.Result, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}

	info := observability.ServiceInfo{Name: cfg.Name, Version: cfg.Version, Environment: cfg.Environment}
	if err := a.RegisterComponent(observability.NewTelemetry(cfg.Telemetry, info, a.Logger)); err != nil {
		return nil, err
	}

	var runner *samples.Runner
	a.OnConfigure(func(_ context.Context, a *bootstrap.App[*Config]) error {
		logger.Register(samples.LoggerName, a.Logger.WithComponent(samples.LoggerName))
		runner = samples.NewRunner(a.Cfg.Samples, nil)
		return nil
	})

	var results []samples.Result
	err = a.RunTask(ctx, func(ctx context.Context) error {
		var runErr error
		results, runErr = runner.Run(ctx, names...)
		a.Logger.Debug("Run complete", logger.Fields(logger.FieldCount, len(results)))
		return runErr
	})
	return results, err
}
