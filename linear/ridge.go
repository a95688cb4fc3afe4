// Package linear provides the ridge regression reference model shipped with
// the evaluation harness.
//
// RidgeRegression solves regularized least squares in closed form using the
// normal equations, with the intercept left unpenalized. With Lambda set to
// zero it reduces to ordinary least squares. The regularization strength is
// exactly the kind of hyperparameter the harness's grid search exists to
// tune, and RidgeTrainer adapts the model to the harness's Trainer
// interface for that purpose.
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/core/model"
	"github.com/ezoic/evalharness/core/parallel"
	"github.com/ezoic/evalharness/dataset"
	"github.com/ezoic/evalharness/modelselection"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
	"github.com/ezoic/evalharness/pkg/log"
)

// RidgeRegression is a linear regression model with L2 regularization.
type RidgeRegression struct {
	State     *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding
	Weights   *mat.VecDense       // Model weights (coefficients)
	Intercept float64             // Model intercept
	NFeatures int                 // Number of features
	Lambda    float64             // L2 regularization strength
	logger    log.Logger          // Logger instance
}

// NewRidgeRegression creates a new ridge regression model with the given
// regularization strength. Lambda must be non-negative; zero gives ordinary
// least squares. The model must be trained with Fit before predicting.
func NewRidgeRegression(lambda float64) *RidgeRegression {
	rr := &RidgeRegression{
		State:  model.NewStateManager(),
		Lambda: lambda,
	}

	rr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "RidgeRegression",
	)

	return rr
}

// Fit trains the model on the given data by solving the regularized normal
// equations (X^T X + lambda*I) w = X^T y, with the intercept term excluded
// from the penalty.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features)
//   - y: Target vector of shape (n_samples, 1)
//
// Errors:
//   - ErrEmptyData: if X or y are empty
//   - DimensionError: if the sample counts of X and y differ
//   - ErrSingularMatrix: if the penalized Gram matrix cannot be inverted
func (rr *RidgeRegression) Fit(X, y mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "RidgeRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("RidgeRegression.Fit", "empty data", scigoErrors.ErrEmptyData)
	}
	if ry != r {
		return scigoErrors.NewDimensionError("RidgeRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return scigoErrors.NewValueError("RidgeRegression.Fit", "y must be a column vector")
	}
	if rr.Lambda < 0 {
		return scigoErrors.NewValidationError("lambda", "must be non-negative", rr.Lambda)
	}

	rr.NFeatures = c

	// Add column of 1s to X for the intercept term
	XWithIntercept := mat.NewDense(r, c+1, nil)

	// Parallelization threshold (sequential below this row count)
	const parallelThreshold = 1000

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	// Add the L2 penalty to the diagonal, skipping the intercept position
	for j := 1; j <= c; j++ {
		XTX.Set(j, j, XTX.At(j, j)+rr.Lambda)
	}

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return scigoErrors.NewModelError("RidgeRegression.Fit", "singular matrix", scigoErrors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	weights := mat.NewVecDense(c+1, nil)
	weights.MulVec(&XTXInv, &XTy)

	rr.Intercept = weights.AtVec(0)
	rr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		rr.Weights.SetVec(i, weights.AtVec(i+1))
	}

	rr.State.SetFitted()
	rr.State.SetDimensions(rr.NFeatures, r)

	rr.logger.Debug("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	return nil
}

// Predict computes y = X*weights + intercept for each input row.
func (rr *RidgeRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "RidgeRegression.Predict")
	if !rr.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("RidgeRegression", "Predict")
	}

	r, c := X.Dims()
	if c != rr.NFeatures {
		return nil, scigoErrors.NewDimensionError("RidgeRegression.Predict", rr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := rr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * rr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// GetWeights returns the learned coefficients.
func (rr *RidgeRegression) GetWeights() []float64 {
	if rr.Weights == nil {
		return nil
	}

	weights := make([]float64, rr.Weights.Len())
	for i := 0; i < rr.Weights.Len(); i++ {
		weights[i] = rr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the learned intercept.
func (rr *RidgeRegression) GetIntercept() float64 {
	if !rr.State.IsFitted() {
		return 0
	}
	return rr.Intercept
}

// IsFitted returns whether the model has been fitted.
func (rr *RidgeRegression) IsFitted() bool {
	return rr.State.IsFitted()
}

// RidgeTrainer adapts RidgeRegression to the harness's Trainer interface.
// It reads the regularization strength from the "lambda" entry of the
// parameter combination, so a grid of {"lambda": [...]} tunes it.
type RidgeTrainer struct{}

// Train implements modelselection.Trainer.
func (RidgeTrainer) Train(train *dataset.Dataset, params modelselection.ParamSet) (modelselection.Predictor, error) {
	lambda, err := params.Float("lambda")
	if err != nil {
		return nil, err
	}

	rr := NewRidgeRegression(lambda)
	if err := rr.Fit(train.Features(), train.Labels()); err != nil {
		return nil, err
	}
	return rr, nil
}
