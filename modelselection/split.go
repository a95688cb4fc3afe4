package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	scigoErrors "github.com/ezoic/evalharness/pkg/errors"
)

// SampledRole states which side of the random draw the sampled subset plays.
//
// TrainTestSplit draws round(n * fraction) indices uniformly at random. Some
// analyses treat that drawn subset as the holdout set (the conventional
// reading of "holdout fraction"); others draw a small training set and keep
// the remainder for testing. The two conventions are easy to confuse, so the
// role is an explicit configuration field rather than something inferred
// from the fraction's size.
type SampledRole int

const (
	// SampledIsHoldout assigns the randomly drawn subset to the holdout
	// side and the remainder to training. This is the default.
	SampledIsHoldout SampledRole = iota

	// SampledIsTrain assigns the randomly drawn subset to the training
	// side and the remainder to holdout.
	SampledIsTrain
)

// String returns the role name.
func (r SampledRole) String() string {
	if r == SampledIsTrain {
		return "train"
	}
	return "holdout"
}

// Split is an immutable partition of record indices into a training subset
// and a holdout subset. The two sides are disjoint and together cover every
// index exactly once.
type Split struct {
	train   []int
	holdout []int
}

// TrainIndices returns a copy of the training indices in ascending order.
func (s *Split) TrainIndices() []int {
	out := make([]int, len(s.train))
	copy(out, s.train)
	return out
}

// HoldoutIndices returns a copy of the holdout indices in ascending order.
func (s *Split) HoldoutIndices() []int {
	out := make([]int, len(s.holdout))
	copy(out, s.holdout)
	return out
}

// TrainSize returns the number of training records.
func (s *Split) TrainSize() int { return len(s.train) }

// HoldoutSize returns the number of holdout records.
func (s *Split) HoldoutSize() int { return len(s.holdout) }

// TrainTestSplit partitions n record indices into training and holdout
// subsets.
//
// round(n * fraction) indices are drawn uniformly at random without
// replacement; role decides which side the drawn subset becomes. The same
// (n, fraction, seed, role) always produces the same Split. Fractions as
// extreme as 0.9 are legitimate (some studies deliberately train on 10%),
// so the only rejected fractions are those outside (0,1) or those that
// leave either side of the partition empty for this n.
func TrainTestSplit(n int, fraction float64, seed int64, role SampledRole) (*Split, error) {
	if n < 2 {
		return nil, scigoErrors.NewConfigurationError("dataset", "need at least 2 records to split", n)
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, scigoErrors.NewConfigurationError("fraction", "must be strictly between 0 and 1", fraction)
	}

	sampledSize := int(math.Round(float64(n) * fraction))
	if sampledSize == 0 || sampledSize == n {
		return nil, scigoErrors.NewConfigurationError("fraction", "rounds to an empty partition for this dataset size", fraction)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	sampled := make([]int, sampledSize)
	copy(sampled, indices[:sampledSize])
	remainder := make([]int, n-sampledSize)
	copy(remainder, indices[sampledSize:])

	// Ascending order within each side keeps subsets in dataset order.
	sort.Ints(sampled)
	sort.Ints(remainder)

	if role == SampledIsTrain {
		return &Split{train: sampled, holdout: remainder}, nil
	}
	return &Split{train: remainder, holdout: sampled}, nil
}
