package modelselection

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ezoic/evalharness/dataset"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
	"github.com/ezoic/evalharness/pkg/log"
)

// ScoreRecord associates one parameter combination with its per-fold scores
// and their aggregate. The harness retains every record produced during a
// grid search, including when the search later fails, so callers can inspect
// what was measured.
type ScoreRecord struct {
	// Params is the parameter combination that was scored.
	Params ParamSet

	// FoldScores holds the k per-fold validation scores in fold order.
	FoldScores []float64

	// MeanScore is the arithmetic mean of FoldScores, the quantity
	// combinations are compared by.
	MeanScore float64

	// StdScore is the sample standard deviation of FoldScores.
	StdScore float64
}

// MarshalZerologObject adds the record's summary to a log event.
func (r *ScoreRecord) MarshalZerologObject(event *zerolog.Event) {
	event.Str("combination", r.Params.String()).
		Float64("mean_score", r.MeanScore).
		Float64("std_score", r.StdScore).
		Int("folds", len(r.FoldScores))
}

// CrossValidator drives a grid search: for every parameter combination it
// runs k-fold cross-validation with a caller-supplied trainer and scorer,
// aggregates the per-fold scores by arithmetic mean, and selects the best
// combination.
//
// Fold evaluations within a combination are independent and run on separate
// goroutines by default; each fold writes into its own result slot, so the
// aggregation needs no locking and the mean is unaffected by completion
// order.
type CrossValidator struct {
	kfold      *KFold
	sequential bool
	logger     log.Logger
}

// CrossValidatorOption configures a CrossValidator.
type CrossValidatorOption func(*CrossValidator)

// WithSequentialFolds evaluates folds one at a time on the calling
// goroutine. Useful when the trainer itself is parallel or not reentrant.
func WithSequentialFolds() CrossValidatorOption {
	return func(cv *CrossValidator) {
		cv.sequential = true
	}
}

// WithLogger replaces the default logger. Tests capture the grid-search
// progress with a log.TestLogger through this option.
func WithLogger(logger log.Logger) CrossValidatorOption {
	return func(cv *CrossValidator) {
		cv.logger = logger
	}
}

// NewCrossValidator creates a CrossValidator over the given fold assignment.
func NewCrossValidator(kfold *KFold, opts ...CrossValidatorOption) *CrossValidator {
	cv := &CrossValidator{
		kfold:  kfold,
		logger: log.GetLoggerWithName("modelselection"),
	}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

// Evaluate runs the grid search over the training set and returns the best
// parameter combination together with every ScoreRecord produced.
//
// The fold assignment is computed once and reused for every combination, so
// all combinations are compared on identical folds. Ties on the aggregated
// score are broken in favor of the first-encountered combination in grid
// expansion order.
//
// A trainer or scorer failure stops the search and is returned with the
// combination and fold that caused it; records for combinations completed
// before the failure are still returned. Failures are never converted into
// skipped combinations, since a silently dropped candidate would corrupt
// selection; a caller that genuinely wants to skip can catch the error and
// retry with a reduced grid.
func (cv *CrossValidator) Evaluate(train *dataset.Dataset, grid ParamGrid, trainer Trainer, scorer Scorer, direction Direction) (ParamSet, []ScoreRecord, error) {
	if train == nil || train.Len() == 0 {
		return nil, nil, scigoErrors.NewConfigurationError("train", "training set is empty", nil)
	}
	if trainer == nil {
		return nil, nil, scigoErrors.NewConfigurationError("trainer", "trainer is required", nil)
	}
	if scorer == nil {
		return nil, nil, scigoErrors.NewConfigurationError("scorer", "scorer is required", nil)
	}

	k := cv.kfold.NSplits
	if k > train.Len() {
		return nil, nil, scigoErrors.NewConfigurationError("folds", "more folds than training records", k)
	}

	combinations, err := grid.Expand()
	if err != nil {
		return nil, nil, err
	}

	cv.logger.Info("Grid search started",
		log.OperationKey, log.OperationGridSearch,
		log.PhaseKey, log.PhaseCrossValidation,
		log.SamplesKey, train.Len(),
		log.FoldsKey, k,
		log.CombinationsKey, len(combinations),
	)

	// Materialize the fold datasets once; every combination sees the same
	// partition of the training set.
	folds := cv.kfold.Split(train.Len())
	trainFolds := make([]*dataset.Dataset, k)
	testFolds := make([]*dataset.Dataset, k)
	for i, fold := range folds {
		trainFolds[i], err = train.Subset(fold.TrainIndices)
		if err != nil {
			return nil, nil, err
		}
		testFolds[i], err = train.Subset(fold.TestIndices)
		if err != nil {
			return nil, nil, err
		}
	}

	records := make([]ScoreRecord, 0, len(combinations))
	bestIdx := -1

	for _, combo := range combinations {
		record, err := cv.evaluateCombination(combo, trainFolds, testFolds, trainer, scorer)
		if err != nil {
			return nil, records, err
		}
		records = append(records, record)

		cv.logger.Debug("Combination scored",
			log.OperationKey, log.OperationGridSearch,
			log.CombinationKey, combo.String(),
			log.MeanScoreKey, record.MeanScore,
		)

		if bestIdx < 0 || direction.Better(record.MeanScore, records[bestIdx].MeanScore) {
			bestIdx = len(records) - 1
		}
	}

	best := records[bestIdx]
	cv.logger.Info("Grid search completed",
		log.OperationKey, log.OperationGridSearch,
		log.CombinationKey, best.Params.String(),
		log.MeanScoreKey, best.MeanScore,
	)

	return best.Params.Clone(), records, nil
}

// evaluateCombination trains and scores one parameter combination across all
// folds. Each fold writes to its own slot; a per-fold error is reported with
// the fold index and combination attached.
func (cv *CrossValidator) evaluateCombination(combo ParamSet, trainFolds, testFolds []*dataset.Dataset, trainer Trainer, scorer Scorer) (ScoreRecord, error) {
	k := len(trainFolds)
	scores := make([]float64, k)
	foldErrs := make([]error, k)

	runFold := func(i int) {
		predictor, err := trainer.Train(trainFolds[i], combo)
		if err != nil {
			foldErrs[i] = scigoErrors.NewTrainingError(combo.String(), i, err)
			return
		}

		score, err := scoreSubset(predictor, testFolds[i], scorer)
		if err != nil {
			foldErrs[i] = scigoErrors.Wrapf(err, "combination %s fold %d", combo.String(), i)
			return
		}
		scores[i] = score

		cv.logger.Debug("Fold scored",
			log.OperationKey, log.OperationGridSearch,
			log.CombinationKey, combo.String(),
			log.FoldKey, i,
			log.ScoreKey, score,
		)
	}

	if cv.sequential {
		for i := 0; i < k; i++ {
			runFold(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				runFold(idx)
			}(i)
		}
		wg.Wait()
	}

	for _, err := range foldErrs {
		if err != nil {
			return ScoreRecord{}, err
		}
	}

	return ScoreRecord{
		Params:     combo,
		FoldScores: scores,
		MeanScore:  mean(scores),
		StdScore:   std(scores),
	}, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func std(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
