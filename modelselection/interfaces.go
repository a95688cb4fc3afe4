// Package modelselection implements the hold-out evaluation harness: a
// reproducible train/holdout split, Cartesian hyperparameter grids, k-fold
// cross-validation with grid search, and a staged evaluation flow that
// refits the winning parameters on the full training set and scores the
// result once against the holdout set.
//
// The harness owns splits, fold assignments, and score records. It does not
// own models: training and prediction are supplied by the caller through the
// Trainer and Predictor interfaces, so any model family (linear, trees,
// kernels, networks) can be plugged in without the harness knowing.
package modelselection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/dataset"
	"github.com/ezoic/evalharness/metrics"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// Trainer fits a model on a training dataset with a specific parameter
// combination and returns a Predictor. Implementations typically wrap an
// existing model's Fit method and translate ParamSet entries into its
// hyperparameters.
type Trainer interface {
	Train(train *dataset.Dataset, params ParamSet) (Predictor, error)
}

// TrainerFunc adapts a function to the Trainer interface.
type TrainerFunc func(train *dataset.Dataset, params ParamSet) (Predictor, error)

// Train implements Trainer.
func (f TrainerFunc) Train(train *dataset.Dataset, params ParamSet) (Predictor, error) {
	return f(train, params)
}

// Predictor produces predictions for new inputs. The returned matrix must
// have one row per input row; the harness scores its first column.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer computes an evaluation metric comparing predictions against ground
// truth. Name identifies the scorer in reports and error messages.
type Scorer interface {
	Name() string
	Score(yTrue, yPred *mat.VecDense) (float64, error)
}

// scorerFunc adapts a named function to the Scorer interface.
type scorerFunc struct {
	name string
	fn   func(yTrue, yPred *mat.VecDense) (float64, error)
}

func (s *scorerFunc) Name() string { return s.name }

func (s *scorerFunc) Score(yTrue, yPred *mat.VecDense) (float64, error) {
	return s.fn(yTrue, yPred)
}

// NewScorer wraps a metric function as a Scorer.
func NewScorer(name string, fn func(yTrue, yPred *mat.VecDense) (float64, error)) Scorer {
	return &scorerFunc{name: name, fn: fn}
}

// MSEScorer scores predictions with mean squared error. Pair it with
// Minimize.
func MSEScorer() Scorer {
	return NewScorer("mse", metrics.MSE)
}

// AccuracyScorer scores predictions with classification accuracy. Pair it
// with Maximize.
func AccuracyScorer() Scorer {
	return NewScorer("accuracy", metrics.Accuracy)
}

// ErrorRateScorer scores predictions with the misclassification rate. Pair
// it with Minimize.
func ErrorRateScorer() Scorer {
	return NewScorer("error_rate", metrics.ClassificationError)
}

// Direction states whether lower or higher scores are better. Error metrics
// such as MSE use Minimize; score metrics such as accuracy use Maximize.
type Direction int

const (
	// Minimize selects the combination with the lowest aggregated score.
	Minimize Direction = iota

	// Maximize selects the combination with the highest aggregated score.
	Maximize
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Better reports whether candidate is strictly better than incumbent under
// the direction. Strict comparison is what gives grid search its
// first-encountered tie-breaking.
func (d Direction) Better(candidate, incumbent float64) bool {
	if d == Maximize {
		return candidate > incumbent
	}
	return candidate < incumbent
}

// scoreSubset runs a predictor over a dataset's features and scores the
// first prediction column against its labels. A prediction row count that
// differs from the record count is a ScoringError: averaging a misshapen
// result away would corrupt selection.
func scoreSubset(predictor Predictor, ds *dataset.Dataset, scorer Scorer) (float64, error) {
	predictions, err := predictor.Predict(ds.Features())
	if err != nil {
		return 0, scigoErrors.NewScoringError(scorer.Name(), "predictor failed", err)
	}

	rows, cols := predictions.Dims()
	if rows != ds.Len() || cols < 1 {
		return 0, scigoErrors.NewScoringError(scorer.Name(), "prediction shape does not match record count", nil)
	}

	yPred := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yPred.SetVec(i, predictions.At(i, 0))
	}

	score, err := scorer.Score(ds.Labels(), yPred)
	if err != nil {
		return 0, scigoErrors.NewScoringError(scorer.Name(), "metric computation failed", err)
	}
	return score, nil
}
