package dataset

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/preprocessing"
)

// Ground truth of the synthetic housing market.
const (
	TrueSlope     = 1000.0
	TrueIntercept = 2_000_000.0

	areaMean, areaStd = 7000.0, 2000.0
	minArea, maxArea  = 3000.0, 15000.0
	noiseStd          = 1_000_000.0
	minPrice          = 3_000_000.0
	maxPrice          = 15_000_000.0
)

// DefaultSeed seeds synthetic data when no CSV is available.
const DefaultSeed = 42

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Generator produces a synthetic dataset from an injected generator.
type Generator func(rng *rand.Rand, n int) (*Dataset, error)

// SimpleSynthetic generates n area/price rows following
// price = 1000·area + 2,000,000 + N(0, 1e6), with area ~ N(7000, 2000)
// clipped to [3000, 15000] and price clipped to [3e6, 15e6].
func SimpleSynthetic(rng *rand.Rand, n int) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}
	area := make([]float64, n)
	price := make([]float64, n)
	for i := range n {
		area[i] = sampleArea(rng)
		price[i] = clipPrice(TrueSlope*area[i] + TrueIntercept + rng.NormFloat64()*noiseStd)
	}
	d, err := New([]string{"area"}, [][]float64{area}, price)
	if err != nil {
		return nil, err
	}
	return d.WithSource("synthetic"), nil
}

var furnishingLevels = []string{"furnished", "semi-furnished", "unfurnished"}

// Price effects of the non-area fields.
var effects = map[string]float64{
	"bedrooms":        150_000,
	"bathrooms":       400_000,
	"stories":         200_000,
	"mainroad":        300_000,
	"guestroom":       200_000,
	"basement":        250_000,
	"hotwaterheating": 150_000,
	"airconditioning": 500_000,
	"parking":         150_000,
	"prefarea":        400_000,
}

var furnishingEffect = map[string]float64{
	"furnished":      300_000,
	"semi-furnished": 150_000,
	"unfurnished":    0,
}

// HousingSynthetic generates n rows with the full housing schema. Price
// keeps the simple area relation and adds an effect per amenity plus
// N(0, 1e6) noise, clipped to [3e6, 15e6].
func HousingSynthetic(rng *rand.Rand, n int) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive", n)
	}

	choose := func(vals ...float64) float64 { return vals[rng.IntN(len(vals))] }
	yesNo := func() float64 { return float64(rng.IntN(2)) }

	names := []string{
		"area", "bedrooms", "bathrooms", "stories", "mainroad", "guestroom",
		"basement", "hotwaterheating", "airconditioning", "parking", "prefarea",
	}
	cols := make([][]float64, len(names))
	for j := range cols {
		cols[j] = make([]float64, n)
	}
	furnishing := make([]string, n)
	price := make([]float64, n)

	for i := range n {
		row := map[string]float64{
			"area":            sampleArea(rng),
			"bedrooms":        choose(2, 3, 4, 5),
			"bathrooms":       choose(1, 2, 3),
			"stories":         choose(1, 2, 3, 4),
			"mainroad":        yesNo(),
			"guestroom":       yesNo(),
			"basement":        yesNo(),
			"hotwaterheating": yesNo(),
			"airconditioning": yesNo(),
			"parking":         choose(0, 1, 2, 3),
			"prefarea":        yesNo(),
		}
		furnishing[i] = furnishingLevels[rng.IntN(len(furnishingLevels))]

		p := TrueSlope*row["area"] + TrueIntercept + furnishingEffect[furnishing[i]]
		for j, name := range names {
			cols[j][i] = row[name]
			p += effects[name] * row[name]
		}
		price[i] = clipPrice(p + rng.NormFloat64()*noiseStd)
	}

	codes, err := preprocessing.NewLabelEncoder().FitTransform(furnishing)
	if err != nil {
		return nil, err
	}
	names = append(names, "furnishingstatus")
	cols = append(cols, codes)

	d, err := New(names, cols, price)
	if err != nil {
		return nil, err
	}
	return d.WithSource("synthetic"), nil
}

func sampleArea(rng *rand.Rand) float64 {
	return errors.ClipValue(rng.NormFloat64()*areaStd+areaMean, minArea, maxArea)
}

func clipPrice(p float64) float64 {
	return errors.ClipValue(p, minPrice, maxPrice)
}
