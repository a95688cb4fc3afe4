package modelselection

import (
	"math/rand/v2"
	"sort"
)

// Fold is a single cross-validation fold: the indices trained on and the
// indices held out for validation.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold assigns records to k disjoint, roughly equal-sized folds. With
// Shuffle disabled the folds are contiguous blocks in record order; with
// Shuffle enabled the assignment is a seeded permutation, so the same seed
// reproduces the same folds.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int64
}

// NewKFold creates a k-fold splitter. Fewer than 2 splits falls back to the
// 5-fold default.
func NewKFold(nSplits int, shuffle bool, randomSeed int64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// Split generates the fold assignment for n records. Every record lands in
// exactly one test fold and in the training side of the other k-1 folds.
// Fold sizes differ by at most one record.
func (kf *KFold) Split(n int) []Fold {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	current := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[current:current+testSize])

		inTest := make(map[int]bool, testSize)
		for _, idx := range testIndices {
			inTest[idx] = true
		}

		trainIndices := make([]int, 0, n-testSize)
		for _, idx := range indices {
			if !inTest[idx] {
				trainIndices = append(trainIndices, idx)
			}
		}

		sort.Ints(testIndices)
		sort.Ints(trainIndices)

		folds[i] = Fold{
			TrainIndices: trainIndices,
			TestIndices:  testIndices,
		}

		current += testSize
	}

	return folds
}
