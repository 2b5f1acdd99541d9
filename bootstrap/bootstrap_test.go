package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(ctx context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}

func (m *mockComponent) Stop(ctx context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}

func (m *mockComponent) Health(ctx context.Context) component.Health { return m.health }

func newTestConfig(name string) *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: name, Version: "1.0.0"}}
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig("fluxkit"), WithLogger(logger.Nop()), WithSignals())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "fluxkit" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil {
		t.Fatal("expected registry and logger")
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied: environment=%q", app.Cfg.Environment)
	}
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.Nop()))
	if err == nil || !strings.Contains(err.Error(), "config.name is required") {
		t.Errorf("expected name validation error, got %v", err)
	}
}

func TestNewAppOptions(t *testing.T) {
	app, err := NewApp(newTestConfig("fluxkit"), WithLogger(logger.Nop()), WithGracefulTimeout(3*time.Second), WithSignals())
	if err != nil {
		t.Fatal(err)
	}
	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("timeout = %v", app.gracefulTimeout)
	}
	if len(app.signals) != 0 {
		t.Errorf("signals = %v, want none", app.signals)
	}
}

func TestNewAppInitsLoggerFromConfig(t *testing.T) {
	defer logger.SetGlobalLogger(logger.GetGlobalLogger())

	cfg := newTestConfig("fluxkit")
	cfg.Logging.Level = "warn"
	app, err := NewApp(cfg, WithSignals())
	if err != nil {
		t.Fatal(err)
	}
	if app.Logger != logger.GetGlobalLogger() {
		t.Error("expected the global logger")
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	var events []string
	healthy := component.Health{Status: component.StatusHealthy}
	_ = app.RegisterComponent(&mockComponent{name: "a", events: &events, health: healthy})
	_ = app.RegisterComponent(&mockComponent{name: "b", events: &events, health: healthy})

	app.OnStart(func(ctx context.Context) error { events = append(events, "onStart"); return nil })
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		events = append(events, "configure:"+a.Cfg.Name)
		return nil
	})
	app.OnReady(func(ctx context.Context) error { events = append(events, "onReady"); return nil })
	app.OnStop(func(ctx context.Context) error { events = append(events, "onStop"); return nil })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start:a,start:b,onStart,configure:fluxkit,onReady,task,onStop,stop:b,stop:a"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("events =\n  %s\nwant\n  %s", got, want)
	}
}

func TestRunTaskErrorWins(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "a", events: &events, stopErr: fmt.Errorf("stop failed")})

	taskErr := fmt.Errorf("task failed")
	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr }); err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTaskStopError(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "a", events: &events, stopErr: fmt.Errorf("stop failed")})

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "stop failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTaskStartFailureSkipsTask(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "a", events: &events})
	_ = app.RegisterComponent(&mockComponent{name: "b", events: &events, startErr: fmt.Errorf("refused")})

	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "initialization failed") {
		t.Fatalf("expected initialization error, got %v", err)
	}
	if ran {
		t.Error("task should not run")
	}
	if got := strings.Join(events, ","); got != "start:a,start:b,stop:a" {
		t.Errorf("events = %s", got)
	}
}

func TestRunTaskConfigureFailure(t *testing.T) {
	app := newTestApp(t)
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error { return fmt.Errorf("bad wiring") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "bad wiring") {
		t.Errorf("expected configure error, got %v", err)
	}
}

func TestRunTaskCanceledContext(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t)
	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "a", events: &events,
		health: component.Health{Name: "a", Status: component.StatusDisabled}})
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("disabled component should be ready: %v", err)
	}

	_ = app.RegisterComponent(&mockComponent{name: "b", events: &events,
		health: component.Health{Name: "b", Status: component.StatusUnhealthy, Message: "down"}})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "b=unhealthy(down)") {
		t.Errorf("expected unhealthy b, got %v", err)
	}
}

func TestHookErrorsAreWrapped(t *testing.T) {
	err := runHooks(context.Background(), []Hook{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return fmt.Errorf("boom") },
	})
	if err == nil || err.Error() != "hook 1 failed: boom" {
		t.Errorf("got %v", err)
	}
}
