package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/fluxkit/bootstrap"
	"github.com/kbukum/fluxkit/config"
	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/observability"
)

func quietOptions() []bootstrap.Option {
	return []bootstrap.Option{bootstrap.WithLogger(logger.Nop()), bootstrap.WithSignals()}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	assert.Equal(t, ServiceName, cfg.Name)
	assert.NotEmpty(t, cfg.Version)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Second, cfg.Samples.IntervalPeriod)
	assert.Equal(t, 12, cfg.Samples.RangeCount)
	assert.False(t, cfg.Telemetry.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Samples.RangeCount = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.samples")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))

	cfg = Config{}
	cfg.ApplyDefaults()
	cfg.Telemetry.SampleRate = 3
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.telemetry")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: fluxkit-test
environment: staging
logging:
  level: warn
samples:
  interval_period: 10ms
  delay: 20ms
  range_count: 4
telemetry:
  enabled: true
  endpoint: collector:4318
`), 0o644))

	cfg, err := Load(config.WithConfigFile(path), config.WithEnvFile(filepath.Join(dir, "missing.env")))
	require.NoError(t, err)
	assert.Equal(t, "fluxkit-test", cfg.Name)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 10*time.Millisecond, cfg.Samples.IntervalPeriod)
	assert.Equal(t, 20*time.Millisecond, cfg.Samples.Delay)
	assert.Equal(t, 4, cfg.Samples.RangeCount)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SAMPLES_RANGE_COUNT", "7")
	cfg, err := Load(config.WithConfigFile(filepath.Join(t.TempDir(), "none.yml")))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Samples.RangeCount)
}

func TestRun(t *testing.T) {
	cfg := &Config{}
	results, err := Run(context.Background(), cfg, []string{"iterator", "null-fault"}, quietOptions()...)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, observability.StatusOK, results[0].Status)
	assert.Equal(t, observability.StatusFault, results[1].Status)
}

func TestRunUnknownSample(t *testing.T) {
	_, err := Run(context.Background(), &Config{}, []string{"missing"}, quietOptions()...)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Environment = "moon"
	_, err := Run(context.Background(), cfg, []string{"iterator"}, quietOptions()...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation")
}
