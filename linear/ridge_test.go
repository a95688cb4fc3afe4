package linear_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/dataset"
	"github.com/ezoic/evalharness/linear"
	"github.com/ezoic/evalharness/modelselection"
)

const epsilon = 1e-8

func TestRidgeRegressionFitOLS(t *testing.T) {
	// With lambda 0 the model reduces to ordinary least squares and must
	// recover y = 2x + 1 exactly.
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})

	model := linear.NewRidgeRegression(0)
	if err := model.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	weights := model.GetWeights()
	if len(weights) != 1 {
		t.Fatalf("expected 1 weight, got %d", len(weights))
	}
	if math.Abs(weights[0]-2.0) > epsilon {
		t.Errorf("expected weight 2.0, got %v", weights[0])
	}
	if math.Abs(model.GetIntercept()-1.0) > epsilon {
		t.Errorf("expected intercept 1.0, got %v", model.GetIntercept())
	}

	pred, err := model.Predict(mat.NewDense(2, 1, []float64{10, -1}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(pred.At(0, 0)-21.0) > epsilon {
		t.Errorf("expected prediction 21, got %v", pred.At(0, 0))
	}
	if math.Abs(pred.At(1, 0)+1.0) > epsilon {
		t.Errorf("expected prediction -1, got %v", pred.At(1, 0))
	}
}

func TestRidgeRegressionShrinkage(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{-2, -1, 0, 1, 2})
	y := mat.NewDense(5, 1, []float64{-4, -2, 0, 2, 4})

	ols := linear.NewRidgeRegression(0)
	if err := ols.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	ridge := linear.NewRidgeRegression(10)
	if err := ridge.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// The penalty shrinks the slope toward zero; the intercept stays
	// unpenalized and near zero for this centered data.
	if math.Abs(ridge.GetWeights()[0]) >= math.Abs(ols.GetWeights()[0]) {
		t.Errorf("expected shrinkage: ridge weight %v, ols weight %v",
			ridge.GetWeights()[0], ols.GetWeights()[0])
	}
	if math.Abs(ridge.GetIntercept()) > epsilon {
		t.Errorf("expected intercept near 0, got %v", ridge.GetIntercept())
	}

	// Closed form for one centered feature: w = sum(xy) / (sum(x^2) + lambda).
	want := 20.0 / (10.0 + 10.0)
	if math.Abs(ridge.GetWeights()[0]-want) > epsilon {
		t.Errorf("expected weight %v, got %v", want, ridge.GetWeights()[0])
	}
}

func TestRidgeRegressionErrors(t *testing.T) {
	t.Run("predict before fit", func(t *testing.T) {
		model := linear.NewRidgeRegression(1)
		if _, err := model.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
			t.Error("expected error for unfitted model")
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		model := linear.NewRidgeRegression(1)
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewDense(2, 1, []float64{1, 2})
		if err := model.Fit(X, y); err == nil {
			t.Error("expected error for mismatched sample counts")
		}
	})

	t.Run("negative lambda", func(t *testing.T) {
		model := linear.NewRidgeRegression(-1)
		X := mat.NewDense(2, 1, []float64{1, 2})
		y := mat.NewDense(2, 1, []float64{1, 2})
		if err := model.Fit(X, y); err == nil {
			t.Error("expected error for negative lambda")
		}
	})

	t.Run("predict feature mismatch", func(t *testing.T) {
		model := linear.NewRidgeRegression(0)
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewDense(3, 1, []float64{1, 2, 3})
		if err := model.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if _, err := model.Predict(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
			t.Error("expected error for wrong feature count")
		}
	})
}

func TestRidgeTrainer(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewVecDense(4, []float64{1, 3, 5, 7})
	ds, err := dataset.New([]string{"x"}, x, y)
	if err != nil {
		t.Fatalf("dataset.New failed: %v", err)
	}

	predictor, err := linear.RidgeTrainer{}.Train(ds, modelselection.ParamSet{"lambda": 0.0})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	pred, err := predictor.Predict(mat.NewDense(1, 1, []float64{4}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(pred.At(0, 0)-9.0) > epsilon {
		t.Errorf("expected prediction 9, got %v", pred.At(0, 0))
	}

	t.Run("missing lambda", func(t *testing.T) {
		if _, err := (linear.RidgeTrainer{}).Train(ds, modelselection.ParamSet{}); err == nil {
			t.Error("expected error when the grid omits lambda")
		}
	})
}
