// Package config loads housefit settings from an optional YAML file and the
// environment.
package config

import (
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/housefit/analysis"
	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/pkg/errors"
)

const (
	// PathEnv overrides the config file path.
	PathEnv = "HOUSEFIT_CONFIG"
	// DefaultPath is read when PathEnv is unset.
	DefaultPath = "housefit.yaml"
	// LogLevelEnv overrides log_level.
	LogLevelEnv = "LOG_LEVEL"
)

// Config holds every tunable of a run.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Data    DataConfig    `yaml:"data"`
	Simple  SimpleConfig  `yaml:"simple"`
	Compare CompareConfig `yaml:"compare"`
}

// DataConfig controls where observations come from.
type DataConfig struct {
	Dir        string   `yaml:"dir"`
	Candidates []string `yaml:"candidates"`
	Seed       uint64   `yaml:"seed"`
}

// SimpleConfig controls the single-predictor analysis.
type SimpleConfig struct {
	PredictArea float64 `yaml:"predict_area"`
	SampleRows  int     `yaml:"sample_rows"`
}

// CompareConfig controls the model comparison.
type CompareConfig struct {
	Folds        int       `yaml:"folds"`
	Seed         uint64    `yaml:"seed"`
	Alphas       []float64 `yaml:"alphas"`
	LassoMaxIter int       `yaml:"lasso_max_iter"`
	NEstimators  int       `yaml:"n_estimators"`
	TestSize     float64   `yaml:"test_size"`
	TopN         int       `yaml:"top_n"`
}

// Default returns the built-in settings.
func Default() *Config {
	def := analysis.DefaultCompareConfig()
	simple := analysis.DefaultSimpleConfig()
	return &Config{
		LogLevel: "info",
		Data: DataConfig{
			Dir:        ".",
			Candidates: append([]string(nil), dataset.DefaultCandidates...),
			Seed:       dataset.DefaultSeed,
		},
		Simple: SimpleConfig{
			PredictArea: simple.PredictAt,
			SampleRows:  simple.SampleRows,
		},
		Compare: CompareConfig{
			Folds:        def.Folds,
			Seed:         def.Seed,
			Alphas:       def.Alphas,
			LassoMaxIter: def.LassoMaxIter,
			NEstimators:  def.NEstimators,
			TestSize:     def.TestSize,
			TopN:         def.TopN,
		},
	}
}

// Load reads the file named by HOUSEFIT_CONFIG (or housefit.yaml) over the
// defaults, applies LOG_LEVEL, and validates the result. A missing file is
// not an error.
func Load() (*Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would make a run meaningless.
func (c *Config) Validate() error {
	cc := c.Compare
	switch {
	case cc.Folds < 2:
		return errors.NewValidationError("compare.folds", "must be at least 2", cc.Folds)
	case len(cc.Alphas) == 0:
		return errors.NewValidationError("compare.alphas", "must not be empty", cc.Alphas)
	case cc.NEstimators <= 0:
		return errors.NewValidationError("compare.n_estimators", "must be positive", cc.NEstimators)
	case cc.LassoMaxIter <= 0:
		return errors.NewValidationError("compare.lasso_max_iter", "must be positive", cc.LassoMaxIter)
	case !(cc.TestSize > 0 && cc.TestSize < 1):
		return errors.NewValidationError("compare.test_size", "must be in (0, 1)", cc.TestSize)
	case cc.TopN < 0:
		return errors.NewValidationError("compare.top_n", "must not be negative", cc.TopN)
	}
	for _, a := range cc.Alphas {
		if !(a > 0) {
			return errors.NewValidationError("compare.alphas", "must be positive", a)
		}
	}
	if c.Simple.SampleRows < 0 {
		return errors.NewValidationError("simple.sample_rows", "must not be negative", c.Simple.SampleRows)
	}
	if len(c.Data.Candidates) == 0 {
		return errors.NewValidationError("data.candidates", "must not be empty", c.Data.Candidates)
	}
	return nil
}

// SimpleAnalysis converts the simple section.
func (c *Config) SimpleAnalysis() analysis.SimpleConfig {
	return analysis.SimpleConfig{
		Feature:    "area",
		PredictAt:  c.Simple.PredictArea,
		SampleRows: c.Simple.SampleRows,
	}
}

// CompareAnalysis converts the compare section.
func (c *Config) CompareAnalysis() analysis.CompareConfig {
	cc := c.Compare
	return analysis.CompareConfig{
		Folds:        cc.Folds,
		Seed:         cc.Seed,
		Alphas:       append([]float64(nil), cc.Alphas...),
		LassoMaxIter: cc.LassoMaxIter,
		NEstimators:  cc.NEstimators,
		TestSize:     cc.TestSize,
		TopN:         cc.TopN,
	}
}
