package dataset

import (
	"slices"
	"strings"
)

// ColumnKind controls how a CSV cell is parsed.
type ColumnKind int

const (
	// Numeric cells are parsed as finite float64 values.
	Numeric ColumnKind = iota
	// Binary cells accept "yes"/"no" (any case) and map to 1/0.
	Binary
	// Categorical cells are free text, label-encoded in first-seen order.
	Categorical
)

// ColumnSpec binds a canonical column name to the header spellings that
// may carry it.
type ColumnSpec struct {
	Canonical string
	Aliases   []string
	Kind      ColumnKind
	Required  bool
}

// ColumnAliases is the full housing schema. Order here is the order of
// feature columns in a loaded Dataset.
var ColumnAliases = []ColumnSpec{
	{Canonical: TargetName, Aliases: []string{"price", "cost", "value"}, Kind: Numeric, Required: true},
	{Canonical: "area", Aliases: []string{"area", "sqft", "size"}, Kind: Numeric, Required: true},
	{Canonical: "bedrooms", Aliases: []string{"bedrooms"}, Kind: Numeric},
	{Canonical: "bathrooms", Aliases: []string{"bathrooms"}, Kind: Numeric},
	{Canonical: "stories", Aliases: []string{"stories"}, Kind: Numeric},
	{Canonical: "mainroad", Aliases: []string{"mainroad"}, Kind: Binary},
	{Canonical: "guestroom", Aliases: []string{"guestroom"}, Kind: Binary},
	{Canonical: "basement", Aliases: []string{"basement"}, Kind: Binary},
	{Canonical: "hotwaterheating", Aliases: []string{"hotwaterheating"}, Kind: Binary},
	{Canonical: "airconditioning", Aliases: []string{"airconditioning"}, Kind: Binary},
	{Canonical: "parking", Aliases: []string{"parking"}, Kind: Numeric},
	{Canonical: "prefarea", Aliases: []string{"prefarea"}, Kind: Binary},
	{Canonical: "furnishingstatus", Aliases: []string{"furnishingstatus"}, Kind: Categorical},
}

// SimpleColumns is the area/price subset used by the single-predictor pipeline.
var SimpleColumns = ColumnAliases[:2]

// ResolveColumns maps each canonical name to the index of the first header
// cell matching one of its aliases, comparing case-insensitively after
// trimming whitespace. Unmatched specs are absent from the result and a
// header cell is bound to at most one spec.
func ResolveColumns(header []string, specs []ColumnSpec) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	used := make(map[int]bool, len(header))
	out := make(map[string]int, len(specs))
	for _, spec := range specs {
		for i, h := range normalized {
			if used[i] || !slices.Contains(spec.Aliases, h) {
				continue
			}
			out[spec.Canonical] = i
			used[i] = true
			break
		}
	}
	return out
}
