// Package dataset holds the immutable tabular data every housefit
// pipeline consumes, together with the loaders that produce it.
package dataset

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/housefit/pkg/errors"
)

// TargetName is the canonical name of the regression target.
const TargetName = "price"

// Observation is one feature vector and its target, in dataset column order.
type Observation struct {
	Features []float64
	Target   float64
}

// Dataset is an ordered, immutable collection of observations sharing
// the same named feature columns. Every derivation returns a new Dataset
// and every accessor returns a copy.
type Dataset struct {
	names  []string
	cols   [][]float64
	target []float64
	source string
}

// New builds a Dataset from column-major feature data. Inputs are copied.
func New(names []string, columns [][]float64, target []float64) (*Dataset, error) {
	if len(names) != len(columns) {
		return nil, errors.NewDimensionError("dataset.New", len(names), len(columns), 1)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return nil, errors.NewValidationError("names", "column name must not be empty", name)
		}
		if _, dup := seen[name]; dup {
			return nil, errors.NewValidationError("names", "duplicate column name", name)
		}
		seen[name] = struct{}{}
	}
	for _, col := range columns {
		if len(col) != len(target) {
			return nil, errors.NewDimensionError("dataset.New", len(target), len(col), 0)
		}
	}
	if err := errors.CheckNumericalStability("dataset.New", target, 0); err != nil {
		return nil, err
	}

	d := &Dataset{
		names:  slices.Clone(names),
		cols:   make([][]float64, len(columns)),
		target: slices.Clone(target),
	}
	for j, col := range columns {
		d.cols[j] = slices.Clone(col)
	}
	return d, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.target) }

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int { return len(d.names) }

// Names returns the feature column names in order.
func (d *Dataset) Names() []string { return slices.Clone(d.names) }

// Source describes where the data came from, e.g. a CSV path or "synthetic".
func (d *Dataset) Source() string { return d.source }

// WithSource returns a copy labelled with the given source.
func (d *Dataset) WithSource(source string) *Dataset {
	c := d.shallow()
	c.source = source
	return c
}

// HasColumn reports whether a feature column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.index(name) >= 0
}

// Column returns a copy of the named feature column.
func (d *Dataset) Column(name string) ([]float64, error) {
	j := d.index(name)
	if j < 0 {
		return nil, errors.NewValueError("Dataset.Column", "unknown column "+name)
	}
	return slices.Clone(d.cols[j]), nil
}

// Target returns a copy of the target values.
func (d *Dataset) Target() []float64 { return slices.Clone(d.target) }

// Observation returns row i.
func (d *Dataset) Observation(i int) Observation {
	row := make([]float64, len(d.cols))
	for j, col := range d.cols {
		row[j] = col[i]
	}
	return Observation{Features: row, Target: d.target[i]}
}

// Select returns a dataset restricted to the named columns, in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("names", "select at least one column", names)
	}
	cols := make([][]float64, len(names))
	for k, name := range names {
		j := d.index(name)
		if j < 0 {
			return nil, errors.NewValueError("Dataset.Select", "unknown column "+name)
		}
		cols[k] = d.cols[j]
	}
	out, err := New(names, cols, d.target)
	if err != nil {
		return nil, err
	}
	out.source = d.source
	return out, nil
}

// WithColumn returns a dataset with one more feature column appended.
func (d *Dataset) WithColumn(name string, values []float64) (*Dataset, error) {
	if d.HasColumn(name) {
		return nil, errors.NewValidationError("name", "column already exists", name)
	}
	if len(values) != d.Len() {
		return nil, errors.NewDimensionError("Dataset.WithColumn", d.Len(), len(values), 0)
	}
	c := d.shallow()
	c.names = append(slices.Clone(d.names), name)
	c.cols = append(slices.Clone(d.cols), slices.Clone(values))
	return c, nil
}

// Subset returns the observations at the given indices, in that order.
// Indices may repeat, which bootstrap sampling relies on.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	cols := make([][]float64, len(d.cols))
	for j := range cols {
		cols[j] = make([]float64, len(indices))
	}
	target := make([]float64, len(indices))
	for k, i := range indices {
		if i < 0 || i >= d.Len() {
			return nil, errors.NewValueError("Dataset.Subset", "row index out of range")
		}
		for j, col := range d.cols {
			cols[j][k] = col[i]
		}
		target[k] = d.target[i]
	}
	out := &Dataset{names: slices.Clone(d.names), cols: cols, target: target, source: d.source}
	return out, nil
}

// Matrix returns the features as a freshly allocated n×p matrix.
func (d *Dataset) Matrix() *mat.Dense {
	n, p := d.Len(), d.NumFeatures()
	if n == 0 || p == 0 {
		return &mat.Dense{}
	}
	X := mat.NewDense(n, p, nil)
	for j, col := range d.cols {
		X.SetCol(j, col)
	}
	return X
}

// TargetMatrix returns the target as a freshly allocated n×1 matrix.
func (d *Dataset) TargetMatrix() *mat.Dense {
	if d.Len() == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(d.Len(), 1, slices.Clone(d.target))
}

// Fingerprint is an xxhash-64 digest over column names, feature values
// and targets. Equal datasets have equal fingerprints.
func (d *Dataset) Fingerprint() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 8)
	for j, name := range d.names {
		_, _ = h.WriteString(name)
		_, _ = h.Write([]byte{0})
		for _, v := range d.cols[j] {
			buf = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v))
			_, _ = h.Write(buf)
		}
	}
	_, _ = h.WriteString(TargetName)
	for _, v := range d.target {
		buf = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v))
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func (d *Dataset) index(name string) int {
	return slices.Index(d.names, name)
}

// shallow shares column storage, which is safe because no method writes to it.
func (d *Dataset) shallow() *Dataset {
	return &Dataset{names: d.names, cols: d.cols, target: d.target, source: d.source}
}
