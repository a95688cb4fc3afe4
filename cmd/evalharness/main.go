// Command evalharness runs a hold-out evaluation described by a YAML
// configuration file: load a CSV dataset, split it, grid-search model
// hyperparameters with k-fold cross-validation, refit the winner on the full
// training set, and score it once against the holdout set.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ezoic/evalharness/baseline"
	"github.com/ezoic/evalharness/dataset"
	"github.com/ezoic/evalharness/linear"
	"github.com/ezoic/evalharness/modelselection"
	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
	"github.com/ezoic/evalharness/pkg/log"
)

// runConfig is the YAML shape of one evaluation run.
type runConfig struct {
	Dataset struct {
		Path        string   `yaml:"path"`
		Label       string   `yaml:"label"`
		Features    []string `yaml:"features"`
		Categorical []string `yaml:"categorical"`
		Standardize bool     `yaml:"standardize"`
	} `yaml:"dataset"`

	Model     string `yaml:"model"`     // ridge | mean | majority
	Scorer    string `yaml:"scorer"`    // mse | accuracy | error_rate
	Direction string `yaml:"direction"` // minimize | maximize

	HoldoutFraction float64 `yaml:"holdout_fraction"`
	SampledRole     string  `yaml:"sampled_role"` // holdout | train
	Seed            int64   `yaml:"seed"`
	Folds           int     `yaml:"folds"`
	ShuffleFolds    bool    `yaml:"shuffle_folds"`
	SequentialFolds bool    `yaml:"sequential_folds"`

	Grid map[string][]interface{} `yaml:"grid"`
}

func loadConfig(path string) (*runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scigoErrors.Wrapf(err, "reading config %s", path)
	}

	cfg := &runConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, scigoErrors.Wrap(err, "parsing config")
	}
	return cfg, nil
}

func (c *runConfig) trainer() (modelselection.Trainer, error) {
	switch strings.ToLower(c.Model) {
	case "ridge":
		return linear.RidgeTrainer{}, nil
	case "mean":
		return baseline.MeanRegressor{}, nil
	case "majority":
		return baseline.MajorityClassifier{}, nil
	default:
		return nil, scigoErrors.NewConfigurationError("model", "unknown model (want ridge, mean, or majority)", c.Model)
	}
}

func (c *runConfig) scorer() (modelselection.Scorer, error) {
	switch strings.ToLower(c.Scorer) {
	case "mse", "":
		return modelselection.MSEScorer(), nil
	case "accuracy":
		return modelselection.AccuracyScorer(), nil
	case "error_rate":
		return modelselection.ErrorRateScorer(), nil
	default:
		return nil, scigoErrors.NewConfigurationError("scorer", "unknown scorer (want mse, accuracy, or error_rate)", c.Scorer)
	}
}

func (c *runConfig) direction() (modelselection.Direction, error) {
	switch strings.ToLower(c.Direction) {
	case "minimize", "":
		return modelselection.Minimize, nil
	case "maximize":
		return modelselection.Maximize, nil
	default:
		return 0, scigoErrors.NewConfigurationError("direction", "unknown direction (want minimize or maximize)", c.Direction)
	}
}

func (c *runConfig) sampledRole() (modelselection.SampledRole, error) {
	switch strings.ToLower(c.SampledRole) {
	case "holdout", "":
		return modelselection.SampledIsHoldout, nil
	case "train":
		return modelselection.SampledIsTrain, nil
	default:
		return 0, scigoErrors.NewConfigurationError("sampled_role", "unknown role (want holdout or train)", c.SampledRole)
	}
}

func runEvaluation(cfg *runConfig, jsonOut bool, out *os.File) error {
	var opts []dataset.CSVOption
	if len(cfg.Dataset.Features) > 0 {
		opts = append(opts, dataset.WithFeatureColumns(cfg.Dataset.Features...))
	}
	if len(cfg.Dataset.Categorical) > 0 {
		opts = append(opts, dataset.WithCategoricalColumns(cfg.Dataset.Categorical...))
	}
	if cfg.Dataset.Standardize {
		opts = append(opts, dataset.WithStandardizedFeatures())
	}

	ds, err := dataset.LoadCSV(cfg.Dataset.Path, cfg.Dataset.Label, opts...)
	if err != nil {
		return err
	}

	trainer, err := cfg.trainer()
	if err != nil {
		return err
	}
	scorer, err := cfg.scorer()
	if err != nil {
		return err
	}
	direction, err := cfg.direction()
	if err != nil {
		return err
	}
	role, err := cfg.sampledRole()
	if err != nil {
		return err
	}

	eval, err := modelselection.NewEvaluation(ds, modelselection.Config{
		HoldoutFraction: cfg.HoldoutFraction,
		SampledRole:     role,
		Seed:            cfg.Seed,
		Folds:           cfg.Folds,
		ShuffleFolds:    cfg.ShuffleFolds,
		Direction:       direction,
		SequentialFolds: cfg.SequentialFolds,
	}, trainer, scorer)
	if err != nil {
		return err
	}

	report, runErr := eval.Run(modelselection.ParamGrid(cfg.Grid))

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonReport(report)); err != nil {
			return err
		}
		return runErr
	}

	printReport(out, report)
	return runErr
}

// jsonReport reshapes a Report for JSON output. The holdout score of a failed
// run is NaN, which encoding/json rejects, so it becomes null instead.
func jsonReport(report *modelselection.Report) map[string]interface{} {
	out := map[string]interface{}{
		"run_id":       report.RunID,
		"stage":        report.Stage.String(),
		"failed":       report.Failed,
		"train_size":   report.TrainSize,
		"holdout_size": report.HoldoutSize,
		"scorer":       report.Scorer,
		"direction":    report.Direction.String(),
		"records":      report.Records,
	}
	if report.BestParams != nil {
		out["best_params"] = report.BestParams
	}
	if !math.IsNaN(report.HoldoutScore) {
		out["holdout_score"] = report.HoldoutScore
	}
	return out
}

func printReport(out *os.File, report *modelselection.Report) {
	fmt.Fprintf(out, "Run %s (%s)\n", report.RunID, report.Stage)
	fmt.Fprintf(out, "Train/holdout: %d/%d records\n", report.TrainSize, report.HoldoutSize)
	fmt.Fprintf(out, "Scorer: %s (%s)\n\n", report.Scorer, report.Direction)

	if len(report.Records) > 0 {
		fmt.Fprintln(out, "Cross-validation results:")
		for _, rec := range report.Records {
			fmt.Fprintf(out, "  %-30s mean=%.6f std=%.6f\n", rec.Params.String(), rec.MeanScore, rec.StdScore)
		}
		fmt.Fprintln(out)
	}

	if report.Failed {
		fmt.Fprintf(out, "Run FAILED at stage %s\n", report.Stage)
		return
	}
	fmt.Fprintf(out, "Best combination: %s\n", report.BestParams.String())
	fmt.Fprintf(out, "Holdout %s: %.6f\n", report.Scorer, report.HoldoutScore)
}

func main() {
	var (
		configPath string
		jsonOut    bool
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "evalharness",
		Short: "Hold-out evaluation with cross-validated grid search",
		Long: `evalharness loads a CSV dataset, splits it into training and holdout
partitions, selects model hyperparameters by k-fold cross-validation over a
parameter grid, refits the best combination on the full training set, and
reports its score on the holdout set.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.LevelDebug)
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runEvaluation(cfg, jsonOut, os.Stdout)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML run configuration (required)")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON instead of text")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = rootCmd.MarkFlagRequired("config")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
