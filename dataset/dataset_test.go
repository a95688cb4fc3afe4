package dataset_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/evalharness/dataset"
)

const epsilon = 1e-10

func newTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	x := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})
	y := mat.NewVecDense(4, []float64{0.1, 0.2, 0.3, 0.4})

	ds, err := dataset.New([]string{"a", "b"}, x, y)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ds
}

func TestNew(t *testing.T) {
	ds := newTestDataset(t)

	if ds.Len() != 4 {
		t.Errorf("expected 4 records, got %d", ds.Len())
	}
	if ds.NumFeatures() != 2 {
		t.Errorf("expected 2 features, got %d", ds.NumFeatures())
	}

	names := ds.FeatureNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected feature names: %v", names)
	}
	if math.Abs(ds.Label(2)-0.3) > epsilon {
		t.Errorf("expected label 0.3, got %v", ds.Label(2))
	}
}

func TestNewValidation(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	tests := []struct {
		name  string
		names []string
		x     *mat.Dense
		y     *mat.VecDense
	}{
		{"nil features", []string{"a"}, nil, mat.NewVecDense(2, nil)},
		{"nil labels", []string{"a", "b"}, x, nil},
		{"name count mismatch", []string{"a"}, x, mat.NewVecDense(2, nil)},
		{"label length mismatch", []string{"a", "b"}, x, mat.NewVecDense(3, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dataset.New(tt.names, tt.x, tt.y); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSubset(t *testing.T) {
	ds := newTestDataset(t)

	sub, err := ds.Subset([]int{3, 1})
	if err != nil {
		t.Fatalf("Subset failed: %v", err)
	}

	if sub.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", sub.Len())
	}

	// Records appear in the requested order.
	if math.Abs(sub.Label(0)-0.4) > epsilon || math.Abs(sub.Label(1)-0.2) > epsilon {
		t.Errorf("unexpected labels: %v, %v", sub.Label(0), sub.Label(1))
	}
	if got := sub.Features().At(0, 1); math.Abs(got-40) > epsilon {
		t.Errorf("expected feature value 40, got %v", got)
	}
}

func TestSubsetCopies(t *testing.T) {
	ds := newTestDataset(t)

	sub, err := ds.Subset([]int{0})
	if err != nil {
		t.Fatalf("Subset failed: %v", err)
	}

	// Mutating the subset must not touch the parent.
	sub.Labels().SetVec(0, 99)
	if math.Abs(ds.Label(0)-0.1) > epsilon {
		t.Error("subset mutation leaked into the parent dataset")
	}
}

func TestSubsetErrors(t *testing.T) {
	ds := newTestDataset(t)

	if _, err := ds.Subset(nil); err == nil {
		t.Error("expected error for empty index set")
	}
	if _, err := ds.Subset([]int{0, 4}); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := ds.Subset([]int{-1}); err == nil {
		t.Error("expected error for negative index")
	}
}
