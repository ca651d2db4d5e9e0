package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "housefit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(LogLevelEnv, "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 5, cfg.Compare.Folds)
	assert.Equal(t, []float64{0.1, 1, 10, 100}, cfg.Compare.Alphas)
	assert.Equal(t, 1500.0, cfg.Simple.PredictArea)
	assert.Equal(t, uint64(42), cfg.Data.Seed)
	assert.Equal(t, "Housing.csv", cfg.Data.Candidates[0])
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	path := writeConfig(t, `
log_level: debug
data:
  candidates: [prices.csv]
compare:
  folds: 10
  alphas: [0.5, 5]
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"prices.csv"}, cfg.Data.Candidates)
	assert.Equal(t, 10, cfg.Compare.Folds)
	assert.Equal(t, []float64{0.5, 5}, cfg.Compare.Alphas)
	assert.Equal(t, 100, cfg.Compare.NEstimators, "unset keys keep defaults")

	ac := cfg.CompareAnalysis()
	assert.Equal(t, 10, ac.Folds)
	assert.Equal(t, 1500.0, cfg.SimpleAnalysis().PredictAt)
}

func TestLoadEnvironment(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")
	t.Setenv(PathEnv, path)
	t.Setenv(LogLevelEnv, "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	_, err := LoadFile(writeConfig(t, "compare: [not, a, map"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"one fold", func(c *Config) { c.Compare.Folds = 1 }, "compare.folds"},
		{"no alphas", func(c *Config) { c.Compare.Alphas = nil }, "compare.alphas"},
		{"zero alpha", func(c *Config) { c.Compare.Alphas = []float64{1, 0} }, "compare.alphas"},
		{"no trees", func(c *Config) { c.Compare.NEstimators = 0 }, "compare.n_estimators"},
		{"test size one", func(c *Config) { c.Compare.TestSize = 1 }, "compare.test_size"},
		{"test size zero", func(c *Config) { c.Compare.TestSize = 0 }, "compare.test_size"},
		{"no candidates", func(c *Config) { c.Data.Candidates = nil }, "data.candidates"},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ve *errors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.param, ve.ParamName)
		})
	}
}
