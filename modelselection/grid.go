package modelselection

import (
	"fmt"
	"sort"
	"strings"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// ParamSet is one hyperparameter combination: a mapping from parameter name
// to a candidate value. Treat a ParamSet handed to a Trainer as immutable;
// use Clone before modifying.
type ParamSet map[string]interface{}

// Clone returns a shallow copy of the parameter set.
func (p ParamSet) Clone() ParamSet {
	out := make(ParamSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Float returns the named parameter as a float64, accepting int and float64
// values. Grids written in config files or literals mix the two freely.
func (p ParamSet) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, scigoErrors.NewValidationError(name, "parameter not present in combination", nil)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, scigoErrors.NewValidationError(name, "parameter is not numeric", v)
	}
}

// String renders the combination with names in sorted order, so the same
// combination always prints the same way in logs and error messages.
func (p ParamSet) String() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, p[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParamGrid maps each parameter name to its ordered candidate values. Expand
// produces the full Cartesian product.
type ParamGrid map[string][]interface{}

// Expand enumerates every parameter combination in a stable, deterministic
// order: parameter names are sorted lexicographically and the last name
// varies fastest, with candidate values kept in their given order. A grid of
// {a: [1,2], b: [10,20]} therefore yields {a=1,b=10}, {a=1,b=20}, {a=2,b=10},
// {a=2,b=20}.
//
// A single-parameter grid with one candidate value yields exactly one
// combination, the degenerate case for a plain fit without tuning. An empty
// grid, or any parameter with no candidates, is a ConfigurationError.
func (g ParamGrid) Expand() ([]ParamSet, error) {
	if len(g) == 0 {
		return nil, scigoErrors.NewConfigurationError("grid", "no parameters to expand", scigoErrors.ErrEmptyGrid)
	}

	names := make([]string, 0, len(g))
	for name := range g {
		if len(g[name]) == 0 {
			return nil, scigoErrors.NewConfigurationError("grid", "parameter has no candidate values", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	total := 1
	for _, name := range names {
		total *= len(g[name])
	}

	combinations := make([]ParamSet, 0, total)
	odometer := make([]int, len(names))

	for {
		combo := make(ParamSet, len(names))
		for i, name := range names {
			combo[name] = g[name][odometer[i]]
		}
		combinations = append(combinations, combo)

		// Advance the odometer, last name fastest.
		pos := len(names) - 1
		for pos >= 0 {
			odometer[pos]++
			if odometer[pos] < len(g[names[pos]]) {
				break
			}
			odometer[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return combinations, nil
}
