package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Complexity sweep bounds: candidates for the minimum-gain parameter are
// log-spaced over this range, most restrictive first.
const (
	sweepMaxGain = 1e-1
	sweepMinGain = 1e-4
)

// CVConfig configures the repeated k-fold cross-validation sweep.
type CVConfig struct {
	Folds      int   `yaml:"folds"`       // k
	Repeats    int   `yaml:"repeats"`     // times the k-fold pass is repeated
	TuneLength int   `yaml:"tune_length"` // candidate count for the complexity parameter
	Seed       int64 `yaml:"seed"`        // governs fold assignment
}

// Validate checks the cross-validation parameters.
func (cv CVConfig) Validate() error {
	if cv.Folds < 2 {
		return &ConfigurationError{Reason: fmt.Sprintf("cross-validation needs at least 2 folds, got %d", cv.Folds)}
	}
	if cv.Repeats < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("cross-validation needs at least 1 repeat, got %d", cv.Repeats)}
	}
	if cv.TuneLength < 1 {
		return &ConfigurationError{Reason: fmt.Sprintf("tune length must be positive, got %d", cv.TuneLength)}
	}
	return nil
}

// CandidateResult is the cross-validated performance of one complexity
// candidate.
type CandidateResult struct {
	MinGain        float64   `json:"min_gain"`
	FoldAccuracies []float64 `json:"fold_accuracies"`
	MeanAccuracy   float64   `json:"mean_accuracy"`
	StdAccuracy    float64   `json:"std_accuracy"`
}

// SweepResult records every candidate considered and which one won.
type SweepResult struct {
	Candidates []CandidateResult `json:"candidates"`
	BestIndex  int               `json:"best_index"`
}

// Best returns the winning candidate.
func (s *SweepResult) Best() CandidateResult {
	return s.Candidates[s.BestIndex]
}

// TrainTree sweeps the tree's complexity parameter under repeated k-fold
// cross-validation and returns the best tree refit on the full training
// set, together with the sweep record.
//
// featureNames is the explicit ordered feature list to model on; it must
// name columns of ds. Fold assignment is a seeded permutation per repeat,
// shared across candidates so they are compared on identical folds. The
// winner is the candidate with the highest mean CV accuracy; ties keep the
// first candidate considered, which is the most restrictive (simplest)
// tree.
func TrainTree(ds *Dataset, featureNames []string, cv CVConfig) (*DecisionTree, *SweepResult, error) {
	if err := cv.Validate(); err != nil {
		return nil, nil, err
	}

	train, err := projectFeatures(ds, featureNames)
	if err != nil {
		return nil, nil, err
	}
	n := train.Rows()
	if n < cv.Folds {
		return nil, nil, &ConfigurationError{Reason: fmt.Sprintf("%d rows cannot fill %d folds", n, cv.Folds)}
	}
	if len(distinctClasses(train.Y)) < 2 {
		return nil, nil, &TrainingError{Reason: "training set contains fewer than 2 label classes"}
	}
	for i, row := range train.X {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, &TrainingError{Reason: fmt.Sprintf("non-finite value in feature %q at row %d", featureNames[j], i)}
			}
		}
	}

	candidates := gainCandidates(cv.TuneLength)
	folds := assignFolds(n, cv)

	sweep := &SweepResult{Candidates: make([]CandidateResult, len(candidates))}
	for c, minGain := range candidates {
		accuracies := make([]float64, 0, len(folds))
		for _, holdout := range folds {
			trainIdx, valIdx := holdout.train, holdout.validate
			tree := NewDecisionTree(minGain)
			if err := tree.Fit(train.subset(trainIdx)); err != nil {
				return nil, nil, err
			}
			acc, err := foldAccuracy(tree, train, valIdx)
			if err != nil {
				return nil, nil, err
			}
			accuracies = append(accuracies, acc)
		}
		sweep.Candidates[c] = CandidateResult{
			MinGain:        minGain,
			FoldAccuracies: accuracies,
			MeanAccuracy:   stat.Mean(accuracies, nil),
			StdAccuracy:    stat.StdDev(accuracies, nil),
		}
		if sweep.Candidates[c].MeanAccuracy > sweep.Candidates[sweep.BestIndex].MeanAccuracy {
			sweep.BestIndex = c
		}
	}

	model := NewDecisionTree(sweep.Best().MinGain)
	if err := model.Fit(train); err != nil {
		return nil, nil, err
	}
	return model, sweep, nil
}

// projectFeatures reorders ds columns to the requested feature list.
func projectFeatures(ds *Dataset, featureNames []string) (*Dataset, error) {
	if len(featureNames) == 0 {
		return nil, &ConfigurationError{Reason: "empty feature list"}
	}
	indices := make([]int, len(featureNames))
	for i, name := range featureNames {
		found := -1
		for j, col := range ds.FeatureNames {
			if col == name {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("feature %q not present in dataset", name)}
		}
		indices[i] = found
	}

	X := make([][]float64, ds.Rows())
	for r, row := range ds.X {
		X[r] = make([]float64, len(indices))
		for i, idx := range indices {
			X[r][i] = row[idx]
		}
	}
	return &Dataset{FeatureNames: featureNames, X: X, Y: ds.Y}, nil
}

// gainCandidates spans the complexity range with count log-spaced values,
// largest (most restrictive) first.
func gainCandidates(count int) []float64 {
	if count == 1 {
		return []float64{math.Sqrt(sweepMaxGain * sweepMinGain)}
	}
	ratio := math.Pow(sweepMinGain/sweepMaxGain, 1/float64(count-1))
	out := make([]float64, count)
	value := sweepMaxGain
	for i := range out {
		out[i] = value
		value *= ratio
	}
	return out
}

type foldSplit struct {
	train    []int
	validate []int
}

// assignFolds builds the fold memberships for every repeat up front: one
// seeded permutation per repeat, sliced into k contiguous chunks, each
// chunk serving once as the validation fold.
func assignFolds(n int, cv CVConfig) []foldSplit {
	rng := rand.New(rand.NewSource(cv.Seed))
	splits := make([]foldSplit, 0, cv.Folds*cv.Repeats)
	for r := 0; r < cv.Repeats; r++ {
		perm := rng.Perm(n)
		foldSize := n / cv.Folds
		for f := 0; f < cv.Folds; f++ {
			start := f * foldSize
			end := start + foldSize
			if f == cv.Folds-1 {
				end = n
			}
			validate := perm[start:end]
			train := make([]int, 0, n-len(validate))
			train = append(train, perm[:start]...)
			train = append(train, perm[end:]...)
			splits = append(splits, foldSplit{train: train, validate: validate})
		}
	}
	return splits
}

func foldAccuracy(tree *DecisionTree, ds *Dataset, indices []int) (float64, error) {
	if len(indices) == 0 {
		return 0, nil
	}
	correct := 0
	for _, idx := range indices {
		pred, err := tree.Predict(ds.X[idx])
		if err != nil {
			return 0, fmt.Errorf("prediction failed at row %d: %w", idx, err)
		}
		if pred == ds.Y[idx] {
			correct++
		}
	}
	return float64(correct) / float64(len(indices)), nil
}
