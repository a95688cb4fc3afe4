package dataset_test

import (
	"math"
	"strings"
	"testing"

	"github.com/ezoic/evalharness/dataset"
)

func TestReadCSV(t *testing.T) {
	csvData := `age,height,city,income
25,170,tokyo,50000
30,165,osaka,60000
35,180,tokyo,70000
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "income",
		dataset.WithCategoricalColumns("city"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if ds.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", ds.Len())
	}
	if ds.NumFeatures() != 3 {
		t.Fatalf("expected 3 features, got %d", ds.NumFeatures())
	}

	// "osaka" sorts before "tokyo", so tokyo encodes to 1.
	if got := ds.Features().At(0, 2); math.Abs(got-1) > epsilon {
		t.Errorf("expected city code 1 for tokyo, got %v", got)
	}
	if got := ds.Features().At(1, 2); math.Abs(got) > epsilon {
		t.Errorf("expected city code 0 for osaka, got %v", got)
	}
	if math.Abs(ds.Label(1)-60000) > epsilon {
		t.Errorf("expected label 60000, got %v", ds.Label(1))
	}
}

func TestReadCSVDropsIncompleteRows(t *testing.T) {
	csvData := `x,y
1,10
NA,20
3,NaN
4,40
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "y")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("expected 2 complete records, got %d", ds.Len())
	}
	if math.Abs(ds.Label(0)-10) > epsilon || math.Abs(ds.Label(1)-40) > epsilon {
		t.Errorf("unexpected labels: %v, %v", ds.Label(0), ds.Label(1))
	}
}

func TestReadCSVCustomMissingTokens(t *testing.T) {
	csvData := `x,y
1,10
-999,20
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "y",
		dataset.WithMissingTokens("-999"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("expected 1 record after filtering, got %d", ds.Len())
	}
}

func TestReadCSVFeatureSelection(t *testing.T) {
	csvData := `a,b,c,y
1,2,3,0
4,5,6,1
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "y",
		dataset.WithFeatureColumns("c", "a"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	names := ds.FeatureNames()
	if len(names) != 2 || names[0] != "c" || names[1] != "a" {
		t.Fatalf("unexpected feature names: %v", names)
	}
	if got := ds.Features().At(1, 0); math.Abs(got-6) > epsilon {
		t.Errorf("expected 6 in column c, got %v", got)
	}
}

func TestReadCSVStandardizedFeatures(t *testing.T) {
	csvData := `x,z,y
0,100,1
0,100,2
10,300,3
10,300,4
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "y",
		dataset.WithStandardizedFeatures())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	// Both columns standardize to -1,-1,1,1 despite their different ranges.
	want := []float64{-1, -1, 1, 1}
	for j := 0; j < 2; j++ {
		for i, w := range want {
			if got := ds.Features().At(i, j); math.Abs(got-w) > epsilon {
				t.Errorf("feature[%d][%d]: expected %v, got %v", i, j, w, got)
			}
		}
	}

	// Labels are never scaled.
	for i := 0; i < 4; i++ {
		if math.Abs(ds.Label(i)-float64(i+1)) > epsilon {
			t.Errorf("label %d: expected %v, got %v", i, i+1, ds.Label(i))
		}
	}
}

func TestReadCSVCategoricalLabel(t *testing.T) {
	csvData := `x,species
1.0,setosa
2.0,versicolor
3.0,setosa
`

	ds, err := dataset.ReadCSV(strings.NewReader(csvData), "species",
		dataset.WithCategoricalColumns("species"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	// setosa=0, versicolor=1 in lexicographic order.
	want := []float64{0, 1, 0}
	for i, w := range want {
		if math.Abs(ds.Label(i)-w) > epsilon {
			t.Errorf("label %d: expected %v, got %v", i, w, ds.Label(i))
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		csv   string
		label string
	}{
		{"missing label column", "a,b\n1,2\n", "y"},
		{"no data rows", "a,y\n", "y"},
		{"non-numeric value", "a,y\nhello,1\n", "y"},
		{"all rows dropped", "a,y\nNA,1\n", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dataset.ReadCSV(strings.NewReader(tt.csv), tt.label); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
