package ml

import (
	"fmt"
	"math"
	"sort"
)

// Default induction limits. The tuned hyperparameter is MinGain; depth and
// split-size floors only guard against pathological recursion.
const (
	DefaultMaxDepth        = 30
	DefaultMinSamplesSplit = 2
)

// TreeNode is a node in the fitted decision tree.
type TreeNode struct {
	Leaf         bool         `json:"leaf"`
	Class        int          `json:"class"`
	ClassCounts  map[int]int  `json:"class_counts,omitempty"`
	Confidence   float64      `json:"confidence"`
	Feature      int          `json:"feature,omitempty"`
	FeatureName  string       `json:"feature_name,omitempty"`
	Threshold    float64      `json:"threshold,omitempty"`
	Left         *TreeNode    `json:"left,omitempty"`
	Right        *TreeNode    `json:"right,omitempty"`
	SamplesCount int          `json:"samples_count"`
	Depth        int          `json:"depth"`
}

// DecisionTree is a single binary decision tree splitting on information
// gain (entropy), the model family the study fits per service. Immutable
// once Fit returns.
type DecisionTree struct {
	Root            *TreeNode `json:"root"`
	FeatureNames    []string  `json:"feature_names"`
	Classes         []int     `json:"classes"`
	MinGain         float64   `json:"min_gain"`
	MaxDepth        int       `json:"max_depth"`
	MinSamplesSplit int       `json:"min_samples_split"`
}

// NewDecisionTree creates an unfitted tree with the given complexity
// parameter: the minimum information gain a split must achieve.
func NewDecisionTree(minGain float64) *DecisionTree {
	return &DecisionTree{
		MinGain:         minGain,
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
	}
}

// Fit builds the tree from the dataset. A single-class dataset fits to a
// lone leaf; callers that must reject degenerate training sets check class
// counts before fitting (TrainTree does).
func (dt *DecisionTree) Fit(ds *Dataset) error {
	if ds.Rows() == 0 {
		return &TrainingError{Reason: "empty training set"}
	}
	dt.FeatureNames = ds.FeatureNames
	dt.Classes = distinctClasses(ds.Y)

	indices := make([]int, ds.Rows())
	for i := range indices {
		indices[i] = i
	}
	dt.Root = dt.buildTree(ds, indices, 0)
	return nil
}

// Predict returns the predicted class for one feature vector.
func (dt *DecisionTree) Predict(x []float64) (int, error) {
	if dt.Root == nil {
		return 0, fmt.Errorf("model not fitted")
	}
	if len(x) != len(dt.FeatureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(dt.FeatureNames), len(x))
	}
	node := dt.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Class, nil
}

// NodeCount returns the total number of nodes in the fitted tree.
func (dt *DecisionTree) NodeCount() int {
	return countNodes(dt.Root)
}

func countNodes(node *TreeNode) int {
	if node == nil {
		return 0
	}
	return 1 + countNodes(node.Left) + countNodes(node.Right)
}

func (dt *DecisionTree) buildTree(ds *Dataset, indices []int, depth int) *TreeNode {
	node := &TreeNode{
		SamplesCount: len(indices),
		Depth:        depth,
	}

	counts := countClasses(ds.Y, indices)
	node.ClassCounts = counts
	node.Class, node.Confidence = majorityClass(counts, len(indices))

	if depth >= dt.MaxDepth || len(indices) < dt.MinSamplesSplit || len(counts) == 1 {
		node.Leaf = true
		return node
	}

	feature, threshold, gain := dt.findBestSplit(ds, indices)
	if feature < 0 || gain < dt.MinGain {
		node.Leaf = true
		return node
	}

	left, right := partition(ds, indices, feature, threshold)
	if len(left) == 0 || len(right) == 0 {
		node.Leaf = true
		return node
	}

	node.Feature = feature
	node.FeatureName = ds.FeatureNames[feature]
	node.Threshold = threshold
	node.Left = dt.buildTree(ds, left, depth+1)
	node.Right = dt.buildTree(ds, right, depth+1)
	return node
}

// findBestSplit scans every feature and every midpoint threshold for the
// split with the highest information gain. Features are scanned in order
// and only a strictly larger gain replaces the incumbent, so fitting is
// deterministic.
func (dt *DecisionTree) findBestSplit(ds *Dataset, indices []int) (int, float64, float64) {
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	parent := entropy(countClasses(ds.Y, indices), len(indices))
	n := float64(len(indices))

	for feature := range ds.FeatureNames {
		values := make([]float64, len(indices))
		for i, idx := range indices {
			values[i] = ds.X[idx][feature]
		}
		for _, threshold := range midpointThresholds(values) {
			left, right := partition(ds, indices, feature, threshold)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			leftEntropy := entropy(countClasses(ds.Y, left), len(left))
			rightEntropy := entropy(countClasses(ds.Y, right), len(right))
			weighted := (float64(len(left))/n)*leftEntropy + (float64(len(right))/n)*rightEntropy
			gain := parent - weighted
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func partition(ds *Dataset, indices []int, feature int, threshold float64) ([]int, []int) {
	var left, right []int
	for _, idx := range indices {
		if ds.X[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

// entropy computes the Shannon entropy of a class distribution in bits.
func entropy(counts map[int]int, total int) float64 {
	if total == 0 {
		return 0
	}
	e := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / float64(total)
		e -= p * math.Log2(p)
	}
	return e
}

// midpointThresholds returns candidate thresholds between consecutive
// distinct values.
func midpointThresholds(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	unique := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			unique = append(unique, v)
		}
	}
	if len(unique) < 2 {
		return nil
	}
	sort.Float64s(unique)
	thresholds := make([]float64, len(unique)-1)
	for i := 0; i < len(unique)-1; i++ {
		thresholds[i] = (unique[i] + unique[i+1]) / 2
	}
	return thresholds
}

func countClasses(y []int, indices []int) map[int]int {
	counts := make(map[int]int)
	for _, idx := range indices {
		counts[y[idx]]++
	}
	return counts
}

func majorityClass(counts map[int]int, total int) (int, float64) {
	bestClass := 0
	bestCount := -1
	for class, count := range counts {
		if count > bestCount || (count == bestCount && class < bestClass) {
			bestClass = class
			bestCount = count
		}
	}
	if total == 0 {
		return bestClass, 0
	}
	return bestClass, float64(bestCount) / float64(total)
}

func distinctClasses(y []int) []int {
	seen := make(map[int]struct{})
	var classes []int
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}
	sort.Ints(classes)
	return classes
}
