// Package preprocessing provides the data preparation steps that run before
// a Dataset reaches the evaluation harness: categorical label encoding and
// feature standardization. Both follow the Fit/Transform estimator idiom.
package preprocessing

import (
	"sort"

	"github.com/ezoic/evalharness/core/model"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// LabelEncoder maps categorical string values to numeric codes. Categories
// are assigned codes in lexicographic order, so encoding is deterministic for
// a given value set.
type LabelEncoder struct {
	State *model.StateManager

	// Classes is the sorted list of known categories.
	Classes []string

	classToCode map[string]int
}

// NewLabelEncoder creates a new, unfitted LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{State: model.NewStateManager()}
}

// Fit learns the category set from the given values.
func (e *LabelEncoder) Fit(values []string) (err error) {
	defer scigoErrors.Recover(&err, "LabelEncoder.Fit")
	if len(values) == 0 {
		return scigoErrors.NewModelError("LabelEncoder.Fit", "empty data", scigoErrors.ErrEmptyData)
	}

	seen := make(map[string]bool)
	for _, v := range values {
		seen[v] = true
	}

	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	e.Classes = classes
	e.classToCode = make(map[string]int, len(classes))
	for code, class := range classes {
		e.classToCode[class] = code
	}

	e.State.SetFitted()
	return nil
}

// Transform converts values to their numeric codes. Unknown categories are an
// error: silently mapping them would fabricate a class the model never saw.
func (e *LabelEncoder) Transform(values []string) (_ []float64, err error) {
	defer scigoErrors.Recover(&err, "LabelEncoder.Transform")
	if !e.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("LabelEncoder", "Transform")
	}

	codes := make([]float64, len(values))
	for i, v := range values {
		code, ok := e.classToCode[v]
		if !ok {
			return nil, scigoErrors.NewValidationError("values", "unknown category", v)
		}
		codes[i] = float64(code)
	}
	return codes, nil
}

// FitTransform fits the encoder on values and transforms them in one step.
func (e *LabelEncoder) FitTransform(values []string) ([]float64, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// InverseTransform converts numeric codes back to category strings.
func (e *LabelEncoder) InverseTransform(codes []float64) (_ []string, err error) {
	defer scigoErrors.Recover(&err, "LabelEncoder.InverseTransform")
	if !e.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	values := make([]string, len(codes))
	for i, code := range codes {
		idx := int(code)
		if idx < 0 || idx >= len(e.Classes) || float64(idx) != code {
			return nil, scigoErrors.NewValidationError("codes", "code does not map to a known category", code)
		}
		values[i] = e.Classes[idx]
	}
	return values, nil
}
