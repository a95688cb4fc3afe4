// Package baseline provides trivial reference models. They exist to anchor
// evaluation results: a tuned model that cannot beat the training-set mean
// or the majority class is not learning anything, and the harness's own
// tests lean on their hand-computable behavior.
package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/dataset"
	"github.com/ezoic/evalharness/modelselection"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// constantPredictor predicts the same value for every input row.
type constantPredictor struct {
	value float64
}

// Predict implements modelselection.Predictor.
func (p *constantPredictor) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, p.value)
	}
	return out, nil
}

// MeanRegressor is a Trainer that always predicts the mean of the training
// labels. It ignores the parameter combination.
type MeanRegressor struct{}

// Train implements modelselection.Trainer.
func (MeanRegressor) Train(train *dataset.Dataset, _ modelselection.ParamSet) (modelselection.Predictor, error) {
	if train == nil || train.Len() == 0 {
		return nil, scigoErrors.NewModelError("MeanRegressor.Train", "empty data", scigoErrors.ErrEmptyData)
	}

	sum := 0.0
	for i := 0; i < train.Len(); i++ {
		sum += train.Label(i)
	}
	return &constantPredictor{value: sum / float64(train.Len())}, nil
}

// MajorityClassifier is a Trainer that always predicts the most frequent
// training label. Frequency ties go to the smaller label value so training
// is deterministic. It ignores the parameter combination.
type MajorityClassifier struct{}

// Train implements modelselection.Trainer.
func (MajorityClassifier) Train(train *dataset.Dataset, _ modelselection.ParamSet) (modelselection.Predictor, error) {
	if train == nil || train.Len() == 0 {
		return nil, scigoErrors.NewModelError("MajorityClassifier.Train", "empty data", scigoErrors.ErrEmptyData)
	}

	counts := make(map[float64]int)
	for i := 0; i < train.Len(); i++ {
		counts[train.Label(i)]++
	}

	var best float64
	bestCount := -1
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return &constantPredictor{value: best}, nil
}
