package errors_test

import (
	"strings"
	"testing"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

func TestConfigurationError(t *testing.T) {
	err := scigoErrors.NewConfigurationError("holdout_fraction", "must be strictly between 0 and 1", 1.5)

	var confErr *scigoErrors.ConfigurationError
	if !scigoErrors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if confErr.Field != "holdout_fraction" {
		t.Errorf("expected field holdout_fraction, got %q", confErr.Field)
	}
	if !strings.Contains(err.Error(), "1.5") {
		t.Errorf("message should carry the offending value: %q", err.Error())
	}
}

func TestTrainingError(t *testing.T) {
	cause := scigoErrors.New("singular matrix")

	t.Run("fold failure", func(t *testing.T) {
		err := scigoErrors.NewTrainingError("{lambda=10}", 2, cause)

		var trainErr *scigoErrors.TrainingError
		if !scigoErrors.As(err, &trainErr) {
			t.Fatalf("expected TrainingError, got %T", err)
		}
		if trainErr.Combination != "{lambda=10}" || trainErr.Fold != 2 {
			t.Errorf("unexpected context: %+v", trainErr)
		}
		if !strings.Contains(err.Error(), "fold 2") {
			t.Errorf("message should name the fold: %q", err.Error())
		}
		if !scigoErrors.Is(err, cause) {
			t.Error("the trainer's cause must stay reachable through the chain")
		}
	})

	t.Run("refit failure", func(t *testing.T) {
		err := scigoErrors.NewTrainingError("{lambda=10}", -1, cause)
		if !strings.Contains(err.Error(), "refit") {
			t.Errorf("message should name the refit: %q", err.Error())
		}
	})
}

func TestScoringError(t *testing.T) {
	err := scigoErrors.NewScoringError("mse", "prediction shape does not match record count", nil)

	var scoreErr *scigoErrors.ScoringError
	if !scigoErrors.As(err, &scoreErr) {
		t.Fatalf("expected ScoringError, got %T", err)
	}
	if scoreErr.Scorer != "mse" {
		t.Errorf("expected scorer mse, got %q", scoreErr.Scorer)
	}
}

func TestNotFittedError(t *testing.T) {
	err := scigoErrors.NewNotFittedError("RidgeRegression", "Predict")
	if !strings.Contains(err.Error(), "RidgeRegression") || !strings.Contains(err.Error(), "Predict") {
		t.Errorf("message should name model and method: %q", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	err := scigoErrors.NewDimensionError("Fit", 3, 5, 0)

	var dimErr *scigoErrors.DimensionError
	if !scigoErrors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %T", err)
	}
	if dimErr.Expected != 3 || dimErr.Got != 5 {
		t.Errorf("unexpected dimensions: %+v", dimErr)
	}
	if !strings.Contains(err.Error(), "rows") {
		t.Errorf("axis 0 should render as rows: %q", err.Error())
	}
}

func TestSentinelChains(t *testing.T) {
	err := scigoErrors.NewModelError("Fit", "empty data", scigoErrors.ErrEmptyData)
	if !scigoErrors.Is(err, scigoErrors.ErrEmptyData) {
		t.Error("ModelError must unwrap to its sentinel")
	}

	wrapped := scigoErrors.Wrap(err, "loading dataset")
	if !scigoErrors.Is(wrapped, scigoErrors.ErrEmptyData) {
		t.Error("wrapping must preserve the chain")
	}
}
