// Package dataset provides the labeled, fully numeric dataset type consumed
// by the evaluation harness, together with a CSV loader that performs column
// selection, type coercion, missing-value filtering, and categorical
// encoding. By the time a Dataset exists, every record has the same features
// and no missing values; the harness never re-validates row contents.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// Dataset is an ordered collection of labeled records. Feature values live in
// an n x d matrix and labels in a length-n vector. The harness treats a
// Dataset as read-only; Subset copies rows rather than aliasing them.
type Dataset struct {
	featureNames []string
	x            *mat.Dense
	y            *mat.VecDense
}

// New creates a Dataset from a feature matrix and a label vector.
//
// The matrix must be non-empty, its column count must match the number of
// feature names, and the label vector length must match the row count.
func New(featureNames []string, x *mat.Dense, y *mat.VecDense) (*Dataset, error) {
	if x == nil || y == nil {
		return nil, scigoErrors.NewValueError("dataset.New", "features and labels cannot be nil")
	}

	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, scigoErrors.NewModelError("dataset.New", "empty data", scigoErrors.ErrEmptyData)
	}
	if len(featureNames) != c {
		return nil, scigoErrors.NewDimensionError("dataset.New", len(featureNames), c, 1)
	}
	if y.Len() != r {
		return nil, scigoErrors.NewDimensionError("dataset.New", r, y.Len(), 0)
	}

	names := make([]string, len(featureNames))
	copy(names, featureNames)

	return &Dataset{featureNames: names, x: x, y: y}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	r, _ := d.x.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	_, c := d.x.Dims()
	return c
}

// FeatureNames returns a copy of the feature column names.
func (d *Dataset) FeatureNames() []string {
	names := make([]string, len(d.featureNames))
	copy(names, d.featureNames)
	return names
}

// Features returns the feature matrix. Callers must not mutate it.
func (d *Dataset) Features() mat.Matrix {
	return d.x
}

// Labels returns the label vector. Callers must not mutate it.
func (d *Dataset) Labels() *mat.VecDense {
	return d.y
}

// Label returns the label of record i.
func (d *Dataset) Label(i int) float64 {
	return d.y.AtVec(i)
}

// Subset returns a new Dataset containing the records at the given indices,
// in the given order. Rows are copied, so the subset stays valid even if the
// parent is garbage collected, and mutating one can never corrupt the other.
func (d *Dataset) Subset(indices []int) (*Dataset, error) {
	n := d.Len()
	if len(indices) == 0 {
		return nil, scigoErrors.NewModelError("Dataset.Subset", "empty index set", scigoErrors.ErrEmptyData)
	}

	_, c := d.x.Dims()
	xSub := mat.NewDense(len(indices), c, nil)
	ySub := mat.NewVecDense(len(indices), nil)

	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, scigoErrors.NewValueError("Dataset.Subset", "index out of range")
		}
		for j := 0; j < c; j++ {
			xSub.Set(i, j, d.x.At(idx, j))
		}
		ySub.SetVec(i, d.y.AtVec(idx))
	}

	return &Dataset{featureNames: d.FeatureNames(), x: xSub, y: ySub}, nil
}
