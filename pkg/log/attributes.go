// Package log defines standard attribute keys for evaluation operations.
//
// Using these keys consistently across the harness enables structured log
// analysis and filtering: every split, cross-validation pass, refit, and
// holdout scoring step emits the same vocabulary.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type being trained.
	// Examples: "RidgeRegression", "MeanRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "split", "grid_search", "fit", "score", "refit"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "modelselection", "dataset", "metrics"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the evaluation run.
	// Examples: "split", "cross_validation", "refit", "holdout"
	PhaseKey = "ml.phase"

	// RunIDKey carries the unique identifier of one evaluation run.
	RunIDKey = "run.id"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// TrainSizeKey indicates the size of the training partition.
	TrainSizeKey = "data.train_size"

	// HoldoutSizeKey indicates the size of the holdout partition.
	HoldoutSizeKey = "data.holdout_size"
)

// Cross-validation context.
const (
	// FoldKey indicates the index of the cross-validation fold in play.
	FoldKey = "cv.fold"

	// FoldsKey indicates the total number of folds.
	FoldsKey = "cv.folds"

	// CombinationKey carries the parameter combination being evaluated.
	CombinationKey = "cv.combination"

	// CombinationsKey indicates the total number of grid combinations.
	CombinationsKey = "cv.combinations"

	// ScoreKey records a single score value.
	ScoreKey = "cv.score"

	// MeanScoreKey records the fold-mean score of a combination.
	MeanScoreKey = "cv.mean_score"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// HoldoutScoreKey records the final holdout score of a run.
	HoldoutScoreKey = "metrics.holdout_score"
)

// Configuration context.
const (
	// HoldoutFractionKey records the configured holdout fraction.
	HoldoutFractionKey = "config.holdout_fraction"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// ScorerNameKey records which scorer produced the run's scores.
	ScorerNameKey = "config.scorer"
)

// Standard attribute value constants for common operations.
const (
	OperationSplit      = "split"
	OperationGridSearch = "grid_search"
	OperationFit        = "fit"
	OperationScore      = "score"
	OperationRefit      = "refit"

	PhaseSplit           = "split"
	PhaseCrossValidation = "cross_validation"
	PhaseRefit           = "refit"
	PhaseHoldout         = "holdout"
)
