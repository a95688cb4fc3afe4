package modelselection

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ezoic/evalharness/dataset"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
	"github.com/ezoic/evalharness/pkg/log"
)

// Stage identifies how far an evaluation run has progressed. Stages advance
// strictly in order; none may be skipped, and in particular the refit on the
// full training set is mandatory: cross-validation only selects parameters,
// it never produces the final model.
type Stage int

const (
	// StageInitialized means the dataset and configuration are loaded but
	// nothing has run.
	StageInitialized Stage = iota

	// StageSplit means the train/holdout split exists.
	StageSplit

	// StageGridSearched means cross-validation selected the best
	// parameter combination.
	StageGridSearched

	// StageRefit means the trainer was refit on the entire training set
	// with the best combination.
	StageRefit

	// StageEvaluated means the refit model was scored against the holdout
	// set. Terminal.
	StageEvaluated
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageInitialized:
		return "initialized"
	case StageSplit:
		return "split"
	case StageGridSearched:
		return "grid_searched"
	case StageRefit:
		return "refit"
	case StageEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// Config collects every knob of one evaluation run. All fields are explicit:
// a run takes its full configuration up front and leaves no process-wide
// state behind.
type Config struct {
	// HoldoutFraction is the fraction of records drawn at random, strictly
	// between 0 and 1. Unusual fractions such as 0.9 are accepted.
	HoldoutFraction float64

	// SampledRole states whether the drawn subset is the holdout set
	// (default) or the training set. See SampledRole.
	SampledRole SampledRole

	// Seed makes the split and fold shuffling reproducible.
	Seed int64

	// Folds is k for the cross-validation inside grid search.
	Folds int

	// ShuffleFolds controls whether fold assignment shuffles record order
	// (seeded by Seed) or uses contiguous blocks. Either way, one run
	// computes its folds once and scores every combination on them.
	ShuffleFolds bool

	// Direction states whether lower or higher scores win.
	Direction Direction

	// SequentialFolds disables fold-level parallelism.
	SequentialFolds bool
}

// Report is the structured output of an evaluation run, complete on success
// and partial on failure. It carries only data; rendering and plotting are
// for the caller.
type Report struct {
	// RunID uniquely identifies this run in logs and downstream storage.
	RunID string

	// Stage is the last stage the run completed.
	Stage Stage

	// Failed marks a run that aborted before StageEvaluated.
	Failed bool

	// TrainSize and HoldoutSize are the partition sizes.
	TrainSize   int
	HoldoutSize int

	// Scorer and Direction describe how scores were produced and compared.
	Scorer    string
	Direction Direction

	// Records holds every combination scored before the run ended.
	Records []ScoreRecord

	// BestParams is the winning combination, nil until grid search
	// completes.
	BestParams ParamSet

	// HoldoutScore is the final score of the refit model on the holdout
	// set; NaN until the run reaches StageEvaluated.
	HoldoutScore float64
}

// Evaluation runs the full hold-out flow for one dataset, trainer, and
// scorer:
//
//	Initialized → Split → GridSearched → Refit → Evaluated
//
// An Evaluation is single-use: Run consumes it. The dataset is treated as
// read-only throughout.
type Evaluation struct {
	cfg     Config
	ds      *dataset.Dataset
	trainer Trainer
	scorer  Scorer

	stage Stage
	runID string

	logger log.Logger
}

// NewEvaluation validates the configuration against the dataset and returns
// a ready-to-run Evaluation. Every configuration problem (an out-of-range
// holdout fraction, more folds than the training side will hold, a missing
// trainer or scorer) is a ConfigurationError raised here, before any model
// training can start.
func NewEvaluation(ds *dataset.Dataset, cfg Config, trainer Trainer, scorer Scorer) (*Evaluation, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, scigoErrors.NewConfigurationError("dataset", "dataset is empty", nil)
	}
	if ds.Len() < 2 {
		return nil, scigoErrors.NewConfigurationError("dataset", "need at least 2 records", ds.Len())
	}
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction >= 1 {
		return nil, scigoErrors.NewConfigurationError("holdout_fraction", "must be strictly between 0 and 1", cfg.HoldoutFraction)
	}
	if trainer == nil {
		return nil, scigoErrors.NewConfigurationError("trainer", "trainer is required", nil)
	}
	if scorer == nil {
		return nil, scigoErrors.NewConfigurationError("scorer", "scorer is required", nil)
	}
	if cfg.Folds < 2 {
		return nil, scigoErrors.NewConfigurationError("folds", "need at least 2 folds", cfg.Folds)
	}

	// The fold count is checked against the eventual training-set size so
	// the run fails here rather than after splitting.
	sampled := int(math.Round(float64(ds.Len()) * cfg.HoldoutFraction))
	trainSize := ds.Len() - sampled
	if cfg.SampledRole == SampledIsTrain {
		trainSize = sampled
	}
	if cfg.Folds > trainSize {
		return nil, scigoErrors.NewConfigurationError("folds", "more folds than training records", cfg.Folds)
	}

	runID := uuid.NewString()
	logger := log.GetLoggerWithName("modelselection").With(
		log.RunIDKey, runID,
		log.ScorerNameKey, scorer.Name(),
	)

	return &Evaluation{
		cfg:     cfg,
		ds:      ds,
		trainer: trainer,
		scorer:  scorer,
		stage:   StageInitialized,
		runID:   runID,
		logger:  logger,
	}, nil
}

// Stage returns the last completed stage.
func (e *Evaluation) Stage() Stage {
	return e.stage
}

// RunID returns the unique identifier of this run.
func (e *Evaluation) RunID() string {
	return e.runID
}

// Run executes the full evaluation flow with the given hyperparameter grid
// and returns the Report.
//
// On failure the error describes the cause and the returned Report is still
// populated with everything computed up to that point (partition sizes and
// any ScoreRecords), with Failed set and Stage marking where the run
// stopped. A failed run never reports a best-effort holdout score.
func (e *Evaluation) Run(grid ParamGrid) (*Report, error) {
	started := time.Now()

	report := &Report{
		RunID:        e.runID,
		Stage:        e.stage,
		Scorer:       e.scorer.Name(),
		Direction:    e.cfg.Direction,
		HoldoutScore: math.NaN(),
	}

	if e.stage != StageInitialized {
		report.Failed = true
		return report, scigoErrors.NewValueError("Evaluation.Run", "evaluation has already run")
	}

	fail := func(err error) (*Report, error) {
		report.Stage = e.stage
		report.Failed = true
		e.logger.Error("Evaluation run failed", err,
			log.PhaseKey, e.stage.String(),
			log.DurationMsKey, time.Since(started).Milliseconds(),
		)
		return report, err
	}

	// Split
	split, err := TrainTestSplit(e.ds.Len(), e.cfg.HoldoutFraction, e.cfg.Seed, e.cfg.SampledRole)
	if err != nil {
		return fail(err)
	}
	trainSet, err := e.ds.Subset(split.TrainIndices())
	if err != nil {
		return fail(err)
	}
	holdoutSet, err := e.ds.Subset(split.HoldoutIndices())
	if err != nil {
		return fail(err)
	}
	e.stage = StageSplit
	report.Stage = e.stage
	report.TrainSize = split.TrainSize()
	report.HoldoutSize = split.HoldoutSize()

	e.logger.Info("Dataset split",
		log.OperationKey, log.OperationSplit,
		log.PhaseKey, log.PhaseSplit,
		log.HoldoutFractionKey, e.cfg.HoldoutFraction,
		log.RandomSeedKey, e.cfg.Seed,
		log.TrainSizeKey, split.TrainSize(),
		log.HoldoutSizeKey, split.HoldoutSize(),
	)

	// Grid search
	kfold := NewKFold(e.cfg.Folds, e.cfg.ShuffleFolds, e.cfg.Seed)
	var cvOpts []CrossValidatorOption
	if e.cfg.SequentialFolds {
		cvOpts = append(cvOpts, WithSequentialFolds())
	}
	cv := NewCrossValidator(kfold, cvOpts...)

	best, records, err := cv.Evaluate(trainSet, grid, e.trainer, e.scorer, e.cfg.Direction)
	report.Records = records
	if err != nil {
		return fail(err)
	}
	e.stage = StageGridSearched
	report.Stage = e.stage
	report.BestParams = best

	// Refit on the entire training set; the fold models are discarded.
	predictor, err := e.trainer.Train(trainSet, best)
	if err != nil {
		return fail(scigoErrors.NewTrainingError(best.String(), -1, err))
	}
	e.stage = StageRefit
	report.Stage = e.stage

	e.logger.Info("Model refit on full training set",
		log.OperationKey, log.OperationRefit,
		log.PhaseKey, log.PhaseRefit,
		log.CombinationKey, best.String(),
		log.TrainSizeKey, trainSet.Len(),
	)

	// Final holdout evaluation
	score, err := scoreSubset(predictor, holdoutSet, e.scorer)
	if err != nil {
		return fail(err)
	}
	e.stage = StageEvaluated
	report.Stage = e.stage
	report.HoldoutScore = score

	e.logger.Info("Evaluation run completed",
		log.OperationKey, log.OperationScore,
		log.PhaseKey, log.PhaseHoldout,
		log.HoldoutScoreKey, score,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)

	return report, nil
}
