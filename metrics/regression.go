// Package metrics provides the evaluation metrics used by the harness to
// score predictors during cross-validation and final holdout evaluation.
//
// Regression metrics:
//   - MSE: Mean Squared Error
//   - RMSE: Root Mean Squared Error
//   - MAE: Mean Absolute Error
//   - R²: coefficient of determination
//
// Classification metrics:
//   - Accuracy and ClassificationError over arbitrary finite label sets
//   - MisclassificationCount for contingency-table style reporting
//   - ConfusionMatrix
//
// All metrics operate on gonum mat vectors. The functions validate their
// inputs and return structured errors rather than producing NaN silently.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE is the average of squared differences between predictions and actual
// values. It is symmetric, non-negative, and zero exactly when the fit is
// perfect. Lower values indicate better model performance.
//
// Parameters:
//   - yTrue: True target values as a vector
//   - yPred: Predicted values as a vector
//
// Returns:
//   - float64: MSE value (non-negative)
//   - error: nil if successful, otherwise an error describing the failure
//
// Example:
//
//	yTrue := mat.NewVecDense(3, []float64{1, 2, 5})
//	yPred := mat.NewVecDense(3, []float64{1, 2, 3})
//	mse, err := metrics.MSE(yTrue, yPred) // 4/3
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MSEMatrix is a convenience wrapper for MSE that accepts matrix inputs,
// scoring the first column of each.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tVec, err := firstColumn("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pVec, err := firstColumn("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(tVec, pVec)
}

// RMSE calculates the Root Mean Squared Error between true and predicted
// values. RMSE is in the same units as the target variable.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
// MAE is less sensitive to outliers than MSE.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		if diff < 0 {
			diff = -diff
		}
		sum += diff
	}
	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination.
//
// R² = 1 - RSS/TSS, where RSS is the residual sum of squares and TSS the
// total sum of squares. A constant target (TSS of zero) makes the score
// ill-defined and returns an error.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.AtVec(i)
	}
	mean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - mean) * (t - mean)
		rss += (t - p) * (t - p)
	}

	if tss == 0 {
		return 0, scigoErrors.NewValueError("R2Score", "total sum of squares is zero (constant target)")
	}
	return 1 - rss/tss, nil
}

// validatePair checks the common preconditions shared by all paired metrics.
func validatePair(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yPred == nil {
		return scigoErrors.NewValueError(op, "input vectors cannot be nil")
	}
	if yTrue.Len() == 0 {
		return scigoErrors.NewValueError(op, "input vectors cannot be empty")
	}
	if yTrue.Len() != yPred.Len() {
		return scigoErrors.NewDimensionError(op, yTrue.Len(), yPred.Len(), 0)
	}
	return nil
}

// firstColumn extracts the first column of m as a vector.
func firstColumn(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, scigoErrors.NewValueError(op, "input matrix cannot be nil")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, scigoErrors.NewValueError(op, "input matrix cannot be empty")
	}

	vec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		vec.SetVec(i, m.At(i, 0))
	}
	return vec, nil
}
