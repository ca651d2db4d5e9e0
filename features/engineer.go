// Package features derives extra predictor columns from a housing dataset.
package features

import (
	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/pkg/log"
)

// Derived column names.
const (
	AreaPerBedroom       = "area_per_bedroom"
	AreaPerBathroom      = "area_per_bathroom"
	BedroomBathroomRatio = "bedroom_bathroom_ratio"
	AreaSquared          = "area_squared"
	TotalAmenities       = "total_amenities"
)

// Amenities are the yes/no columns summed into total_amenities.
var Amenities = []string{"guestroom", "basement", "hotwaterheating", "airconditioning"}

// derivation は全ての元列が存在する場合にだけ作られる派生列
type derivation struct {
	name    string
	sources []string
	compute func(src [][]float64, i int) float64
}

var derivations = []derivation{
	{AreaPerBedroom, []string{"area", "bedrooms"}, func(s [][]float64, i int) float64 {
		return s[0][i] / (s[1][i] + 1)
	}},
	{AreaPerBathroom, []string{"area", "bathrooms"}, func(s [][]float64, i int) float64 {
		return s[0][i] / (s[1][i] + 1)
	}},
	{BedroomBathroomRatio, []string{"bedrooms", "bathrooms"}, func(s [][]float64, i int) float64 {
		return s[0][i] / (s[1][i] + 1)
	}},
	{AreaSquared, []string{"area"}, func(s [][]float64, i int) float64 {
		return s[0][i] * s[0][i]
	}},
}

// Engineer returns a new dataset with every derived column whose sources are
// present, plus the names of the columns it created. The input is not
// modified. Columns that already exist are left alone.
func Engineer(d *dataset.Dataset) (*dataset.Dataset, []string, error) {
	out := d
	var created []string

	for _, dv := range derivations {
		if out.HasColumn(dv.name) {
			continue
		}
		src, ok := columns(d, dv.sources)
		if !ok {
			continue
		}
		values := make([]float64, d.Len())
		for i := range values {
			values[i] = dv.compute(src, i)
		}
		next, err := out.WithColumn(dv.name, values)
		if err != nil {
			return nil, nil, err
		}
		out = next
		created = append(created, dv.name)
	}

	// total_amenities は存在するアメニティ列だけを合計する
	if !out.HasColumn(TotalAmenities) {
		var present [][]float64
		for _, name := range Amenities {
			if col, err := d.Column(name); err == nil {
				present = append(present, col)
			}
		}
		if len(present) > 0 {
			total := make([]float64, d.Len())
			for _, col := range present {
				for i, v := range col {
					total[i] += v
				}
			}
			next, err := out.WithColumn(TotalAmenities, total)
			if err != nil {
				return nil, nil, err
			}
			out = next
			created = append(created, TotalAmenities)
		}
	}

	log.GetLoggerWithName("features").Debug("Engineered features",
		log.FeaturesKey, out.NumFeatures(),
		"created", created,
	)
	return out, created, nil
}

func columns(d *dataset.Dataset, names []string) ([][]float64, bool) {
	out := make([][]float64, len(names))
	for k, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, false
		}
		out[k] = col
	}
	return out, true
}
