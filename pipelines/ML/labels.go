package ml

import (
	"fmt"
	"math/rand"
)

// SynthesizeLabels returns a binary label vector of length total holding
// exactly positive ones, randomly permuted. The permutation is a
// Fisher-Yates shuffle driven by math/rand's default source seeded with
// seed, so the same (total, positive, seed) triple produces a bit-identical
// vector on every run and platform.
func SynthesizeLabels(total, positive int, seed int64) ([]int, error) {
	if total < 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("negative label count %d", total)}
	}
	if positive < 0 || positive > total {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("positive count %d out of range [0, %d]", positive, total)}
	}

	labels := make([]int, total)
	for i := 0; i < positive; i++ {
		labels[i] = 1
	}

	rng := rand.New(rand.NewSource(seed))
	for i := total - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels, nil
}
