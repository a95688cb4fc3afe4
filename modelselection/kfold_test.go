package modelselection

import "testing"

func TestKFoldCoverage(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		k       int
		shuffle bool
	}{
		{"even division", 10, 5, false},
		{"uneven division", 10, 3, false},
		{"shuffled", 17, 4, true},
		{"k equals n", 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kf := NewKFold(tt.k, tt.shuffle, 42)
			folds := kf.Split(tt.n)

			if len(folds) != tt.k {
				t.Fatalf("expected %d folds, got %d", tt.k, len(folds))
			}

			// Every record appears in exactly one test fold and in the
			// training side of the other k-1 folds.
			testCount := make(map[int]int)
			for _, fold := range folds {
				for _, idx := range fold.TestIndices {
					testCount[idx]++
				}
				if len(fold.TrainIndices)+len(fold.TestIndices) != tt.n {
					t.Errorf("fold does not cover all records: %d train + %d test",
						len(fold.TrainIndices), len(fold.TestIndices))
				}
			}
			if len(testCount) != tt.n {
				t.Errorf("expected %d distinct test records, got %d", tt.n, len(testCount))
			}
			for idx, count := range testCount {
				if count != 1 {
					t.Errorf("record %d appears in %d test folds", idx, count)
				}
			}
		})
	}
}

func TestKFoldSizes(t *testing.T) {
	kf := NewKFold(3, false, 0)
	folds := kf.Split(10)

	// 10 records over 3 folds: sizes differ by at most one.
	wantSizes := []int{4, 3, 3}
	for i, fold := range folds {
		if len(fold.TestIndices) != wantSizes[i] {
			t.Errorf("fold %d: expected test size %d, got %d", i, wantSizes[i], len(fold.TestIndices))
		}
	}
}

func TestKFoldShuffleDeterministic(t *testing.T) {
	first := NewKFold(4, true, 7).Split(20)
	second := NewKFold(4, true, 7).Split(20)

	for i := range first {
		if len(first[i].TestIndices) != len(second[i].TestIndices) {
			t.Fatalf("fold %d: sizes differ between identical seeds", i)
		}
		for j := range first[i].TestIndices {
			if first[i].TestIndices[j] != second[i].TestIndices[j] {
				t.Errorf("fold %d: test indices differ between identical seeds", i)
				break
			}
		}
	}
}

func TestKFoldDefaultSplits(t *testing.T) {
	kf := NewKFold(0, false, 0)
	if kf.NSplits != 5 {
		t.Errorf("expected fallback to 5 splits, got %d", kf.NSplits)
	}
}
