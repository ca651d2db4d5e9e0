package dataset

import (
	"path/filepath"

	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// DefaultCandidates are the CSV files tried, in order.
var DefaultCandidates = []string{"Housing.csv", "house_data.csv", "housing_prices.csv", "sample_house_data.csv"}

// Provider loads the first usable CSV among Candidates and falls back to
// synthetic data when none can be used.
type Provider struct {
	// Dir is prepended to relative candidate paths.
	Dir        string
	Candidates []string
	Columns    []ColumnSpec

	Generator Generator
	Seed      uint64
	Samples   int

	Logger log.Logger
}

// NewSimpleProvider loads area/price only and synthesises 100 rows on fallback.
func NewSimpleProvider(dir string, candidates []string, seed uint64) *Provider {
	return &Provider{
		Dir:        dir,
		Candidates: candidates,
		Columns:    SimpleColumns,
		Generator:  SimpleSynthetic,
		Seed:       seed,
		Samples:    100,
	}
}

// NewHousingProvider loads the full schema and synthesises 500 rows on fallback.
func NewHousingProvider(dir string, candidates []string, seed uint64) *Provider {
	return &Provider{
		Dir:        dir,
		Candidates: candidates,
		Columns:    ColumnAliases,
		Generator:  HousingSynthetic,
		Seed:       seed,
		Samples:    500,
	}
}

// Load returns the dataset and its load stats. Missing or unusable files
// are not errors; only a failing generator is.
func (p *Provider) Load() (*Dataset, LoadStats, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("dataset")
	}

	for _, name := range p.Candidates {
		path := name
		if p.Dir != "" && !filepath.IsAbs(name) {
			path = filepath.Join(p.Dir, name)
		}
		d, stats, err := LoadCSV(path, p.Columns)
		if err != nil {
			logger.Debug("Skipping candidate", log.SourceKey, path, log.ErrorKey, err)
			continue
		}
		logger.Info("Loaded dataset",
			log.SourceKey, path,
			log.SamplesKey, d.Len(),
			log.FeaturesKey, d.NumFeatures(),
			log.SkippedRowsKey, stats.Skipped,
			log.FingerprintKey, d.Fingerprint(),
		)
		return d, stats, nil
	}

	logger.Warn("No dataset found, generating synthetic data",
		log.ErrorKey, errors.ErrMissingInput,
		log.RandomSeedKey, p.Seed,
		log.SamplesKey, p.Samples,
	)
	d, err := p.Generator(NewRand(p.Seed), p.Samples)
	if err != nil {
		return nil, LoadStats{}, errors.Wrap(err, "generate synthetic data")
	}
	return d, LoadStats{Source: d.Source(), Rows: d.Len()}, nil
}
