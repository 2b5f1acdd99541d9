// Package bootstrap runs a fluxkit binary: it validates the typed config,
// sets up the logger, starts registered components, runs a finite task and
// shuts down in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(observability.NewTelemetry(cfg.Telemetry, info, app.Logger))
//	return app.RunTask(ctx, runSamples)
package bootstrap
