package ml

import (
	"fmt"
	"math/rand"
)

// Split draws a train set and a test set from ds by uniform
// with-replacement index sampling. Both draws come from one generator
// seeded with seed, train first, then test, so results are exactly
// reproducible. Sizes are absolute row counts.
//
// With-replacement sampling means the two sets may overlap and either may
// contain duplicate rows; this resampling policy is deliberate and kept
// for reproducibility of the original study results.
func Split(ds *Dataset, trainSize, testSize int, seed int64) (*Dataset, *Dataset, error) {
	if trainSize < 0 || testSize < 0 {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("negative split sizes %d/%d", trainSize, testSize)}
	}
	n := ds.Rows()
	if n == 0 && (trainSize > 0 || testSize > 0) {
		return nil, nil, &ConfigurationError{Reason: "cannot sample from an empty dataset"}
	}

	rng := rand.New(rand.NewSource(seed))
	draw := func(size int) []int {
		indices := make([]int, size)
		for i := range indices {
			indices[i] = rng.Intn(n)
		}
		return indices
	}

	var trainIdx, testIdx []int
	if trainSize > 0 {
		trainIdx = draw(trainSize)
	}
	if testSize > 0 {
		testIdx = draw(testSize)
	}
	return ds.subset(trainIdx), ds.subset(testIdx), nil
}
