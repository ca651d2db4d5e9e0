package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/housefit/pkg/errors"
	"github.com/YuminosukeSato/housefit/preprocessing"
)

// ErrMissingColumns is returned when a CSV header lacks a required column.
var ErrMissingColumns = errors.New("required column not found in header")

// LoadStats summarises one CSV load.
type LoadStats struct {
	Source  string
	Rows    int
	Skipped int
}

// LoadCSV opens path and reads it with ReadCSV. A missing or unreadable
// file yields an error wrapping errors.ErrMissingInput.
func LoadCSV(path string, specs []ColumnSpec) (*Dataset, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{Source: path}, errors.Wrapf(errors.ErrMissingInput, "open %s: %v", path, err)
	}
	defer f.Close()
	return ReadCSV(f, path, specs)
}

// ReadCSV parses a headered CSV stream against the column specs.
//
// Columns not named by any spec are ignored. A row whose recognised cells
// cannot be parsed is dropped and reported through errors.Warn as a
// MalformedRowWarning; the remaining rows are kept. Categorical columns are
// label-encoded in first-seen order over the kept rows.
func ReadCSV(r io.Reader, source string, specs []ColumnSpec) (*Dataset, LoadStats, error) {
	stats := LoadStats{Source: source}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, errors.Wrapf(errors.ErrEmptyData, "%s: no header", source)
	}
	if err != nil {
		return nil, stats, errors.Wrapf(errors.ErrMissingInput, "%s: read header: %v", source, err)
	}

	resolved := ResolveColumns(header, specs)
	var bound []ColumnSpec
	for _, spec := range specs {
		if _, ok := resolved[spec.Canonical]; ok {
			bound = append(bound, spec)
			continue
		}
		if spec.Required {
			return nil, stats, errors.Wrapf(ErrMissingColumns, "%s: %s", source, spec.Canonical)
		}
	}

	numeric := make(map[string][]float64, len(bound))
	labels := make(map[string][]string)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 壊れた行（引用符の不整合など）は1行として扱い読み飛ばす
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				errors.Warn(errors.NewMalformedRowWarning(source, parseErr.Line, "", parseErr.Err.Error()))
				stats.Skipped++
				continue
			}
			return nil, stats, errors.Wrapf(errors.ErrMissingInput, "%s: %v", source, err)
		}

		values, texts, bad := parseRecord(record, resolved, bound)
		if bad != nil {
			line, _ := reader.FieldPos(0)
			errors.Warn(errors.NewMalformedRowWarning(source, line, bad.column, bad.value))
			stats.Skipped++
			continue
		}
		for name, v := range values {
			numeric[name] = append(numeric[name], v)
		}
		for name, s := range texts {
			labels[name] = append(labels[name], s)
		}
		stats.Rows++
	}

	if stats.Rows == 0 {
		return nil, stats, errors.Wrapf(errors.ErrEmptyData, "%s: no usable rows", source)
	}

	var names []string
	var cols [][]float64
	for _, spec := range bound {
		if spec.Canonical == TargetName {
			continue
		}
		col := numeric[spec.Canonical]
		if spec.Kind == Categorical {
			col, err = preprocessing.NewLabelEncoder().FitTransform(labels[spec.Canonical])
			if err != nil {
				return nil, stats, err
			}
		}
		names = append(names, spec.Canonical)
		cols = append(cols, col)
	}

	d, err := New(names, cols, numeric[TargetName])
	if err != nil {
		return nil, stats, err
	}
	return d.WithSource(source), stats, nil
}

type badCell struct {
	column string
	value  string
}

func parseRecord(record []string, resolved map[string]int, bound []ColumnSpec) (map[string]float64, map[string]string, *badCell) {
	values := make(map[string]float64, len(bound))
	texts := make(map[string]string)

	for _, spec := range bound {
		idx := resolved[spec.Canonical]
		if idx >= len(record) {
			return nil, nil, &badCell{column: spec.Canonical}
		}
		cell := strings.TrimSpace(record[idx])

		switch spec.Kind {
		case Numeric:
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, &badCell{column: spec.Canonical, value: cell}
			}
			values[spec.Canonical] = v
		case Binary:
			v, err := preprocessing.ParseYesNo(cell)
			if err != nil {
				return nil, nil, &badCell{column: spec.Canonical, value: cell}
			}
			values[spec.Canonical] = v
		case Categorical:
			if cell == "" {
				return nil, nil, &badCell{column: spec.Canonical, value: cell}
			}
			texts[spec.Canonical] = strings.ToLower(cell)
		}
	}
	return values, texts, nil
}
