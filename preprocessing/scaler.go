package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/core/model"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// StandardScaler standardizes features by removing the per-column mean and
// scaling to unit variance. Columns with zero variance are centered but left
// unscaled so Transform never divides by zero.
type StandardScaler struct {
	State *model.StateManager

	// Mean holds the per-feature mean learned during Fit.
	Mean []float64

	// Scale holds the per-feature standard deviation learned during Fit.
	Scale []float64
}

// NewStandardScaler creates a new, unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{State: model.NewStateManager()}
}

// Fit learns the per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "StandardScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("StandardScaler.Fit", "empty data", scigoErrors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(r)

		var sqSum float64
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - mean
			sqSum += diff * diff
		}
		std := math.Sqrt(sqSum / float64(r))

		s.Mean[j] = mean
		if std == 0 {
			std = 1.0
		}
		s.Scale[j] = std
	}

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform standardizes X using the learned mean and scale.
func (s *StandardScaler) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer scigoErrors.Recover(&err, "StandardScaler.Transform")
	if !s.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, scigoErrors.NewDimensionError("StandardScaler.Transform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler on X and transforms it in one step.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
