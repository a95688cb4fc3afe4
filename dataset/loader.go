package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
	"github.com/ezoic/evalharness/preprocessing"
)

// CSVOption configures LoadCSV and ReadCSV.
type CSVOption func(*csvConfig)

type csvConfig struct {
	featureColumns []string
	categorical    map[string]bool
	missingTokens  map[string]bool
	standardize    bool
}

// WithFeatureColumns restricts loading to the named feature columns, in the
// given order. By default every column except the label is a feature.
func WithFeatureColumns(names ...string) CSVOption {
	return func(c *csvConfig) {
		c.featureColumns = names
	}
}

// WithCategoricalColumns marks columns whose string values should be encoded
// as numeric codes with a LabelEncoder instead of parsed as floats.
func WithCategoricalColumns(names ...string) CSVOption {
	return func(c *csvConfig) {
		for _, n := range names {
			c.categorical[n] = true
		}
	}
}

// WithStandardizedFeatures standardizes every feature column to zero mean
// and unit variance with a StandardScaler after loading. Labels are left
// untouched. Scale-sensitive models such as ridge regression want this when
// features live on very different ranges.
func WithStandardizedFeatures() CSVOption {
	return func(c *csvConfig) {
		c.standardize = true
	}
}

// WithMissingTokens replaces the default set of cell values treated as
// missing ("", "NA", "NaN", "?").
func WithMissingTokens(tokens ...string) CSVOption {
	return func(c *csvConfig) {
		c.missingTokens = make(map[string]bool, len(tokens))
		for _, t := range tokens {
			c.missingTokens[t] = true
		}
	}
}

// LoadCSV reads a headered CSV file into a Dataset. Rows containing missing
// values in any selected column are dropped before the Dataset is built, so
// the harness only ever sees complete records.
func LoadCSV(path, labelColumn string, opts ...CSVOption) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, scigoErrors.Wrapf(err, "dataset: opening %s", path)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file, labelColumn, opts...)
}

// ReadCSV reads headered CSV content from r into a Dataset.
//
// The first row must be a header naming every column. The label column and
// any categorical feature columns are encoded to numeric codes in
// lexicographic category order; all other selected columns are parsed as
// floats.
func ReadCSV(r io.Reader, labelColumn string, opts ...CSVOption) (_ *Dataset, err error) {
	defer scigoErrors.Recover(&err, "dataset.ReadCSV")

	cfg := &csvConfig{
		categorical: make(map[string]bool),
		missingTokens: map[string]bool{
			"": true, "NA": true, "NaN": true, "?": true,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, scigoErrors.Wrap(err, "dataset: reading csv")
	}
	if len(records) < 2 {
		return nil, scigoErrors.NewModelError("dataset.ReadCSV", "no data rows", scigoErrors.ErrEmptyData)
	}

	header := records[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	labelIdx, ok := colIndex[labelColumn]
	if !ok {
		return nil, scigoErrors.NewValidationError("labelColumn", "column not found in header", labelColumn)
	}

	featureNames := cfg.featureColumns
	if featureNames == nil {
		for _, name := range header {
			if name != labelColumn {
				featureNames = append(featureNames, name)
			}
		}
	}

	featureIdx := make([]int, len(featureNames))
	for i, name := range featureNames {
		idx, ok := colIndex[name]
		if !ok {
			return nil, scigoErrors.NewValidationError("featureColumns", "column not found in header", name)
		}
		featureIdx[i] = idx
	}

	// First pass: keep complete rows, collecting raw cells per column.
	var kept [][]string
	for _, row := range records[1:] {
		complete := true
		if cfg.missingTokens[row[labelIdx]] {
			complete = false
		}
		for _, idx := range featureIdx {
			if idx >= len(row) || cfg.missingTokens[row[idx]] {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, scigoErrors.NewModelError("dataset.ReadCSV", "all rows dropped by missing-value filter", scigoErrors.ErrEmptyData)
	}

	// Second pass: coerce columns. Categorical columns (and a non-numeric
	// label column) go through a LabelEncoder; everything else parses as
	// float64.
	x := mat.NewDense(len(kept), len(featureNames), nil)
	for j, name := range featureNames {
		values, err := coerceColumn(kept, featureIdx[j], name, cfg.categorical[name])
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			x.Set(i, j, v)
		}
	}

	if cfg.standardize {
		scaler := preprocessing.NewStandardScaler()
		x, err = scaler.FitTransform(x)
		if err != nil {
			return nil, err
		}
	}

	labels, err := coerceColumn(kept, labelIdx, labelColumn, cfg.categorical[labelColumn])
	if err != nil {
		return nil, err
	}
	y := mat.NewVecDense(len(labels), labels)

	return New(featureNames, x, y)
}

func coerceColumn(rows [][]string, idx int, name string, categorical bool) ([]float64, error) {
	if categorical {
		raw := make([]string, len(rows))
		for i, row := range rows {
			raw[i] = row[idx]
		}
		encoder := preprocessing.NewLabelEncoder()
		codes, err := encoder.FitTransform(raw)
		if err != nil {
			return nil, scigoErrors.Wrapf(err, "dataset: encoding column %s", name)
		}
		return codes, nil
	}

	values := make([]float64, len(rows))
	for i, row := range rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, scigoErrors.NewValidationError(name, "value is not numeric; mark the column categorical or clean the data", row[idx])
		}
		values[i] = v
	}
	return values, nil
}
