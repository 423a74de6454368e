package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fittedTree(t *testing.T) (*DecisionTree, *Dataset) {
	t.Helper()
	ds := separableDataset(t)
	tree := NewDecisionTree(0.01)
	require.NoError(t, tree.Fit(ds))
	return tree, ds
}

func TestEvaluateModel(t *testing.T) {
	t.Run("cells sum to the test row count", func(t *testing.T) {
		tree, ds := fittedTree(t)
		result, err := EvaluateModel(tree, ds)
		require.NoError(t, err)

		sum := result.TruePositives + result.TrueNegatives + result.FalsePositives + result.FalseNegatives
		assert.Equal(t, ds.Rows(), sum)
		assert.Equal(t, ds.Rows(), result.Total)
	})

	t.Run("perfect classifier metrics", func(t *testing.T) {
		tree, ds := fittedTree(t)
		result, err := EvaluateModel(tree, ds)
		require.NoError(t, err)

		assert.Equal(t, 1.0, result.Accuracy)
		require.True(t, result.SensitivityDefined)
		assert.Equal(t, 1.0, result.Sensitivity)
		require.True(t, result.SpecificityDefined)
		assert.Equal(t, 1.0, result.Specificity)
		assert.Zero(t, result.FalsePositives)
		assert.Zero(t, result.FalseNegatives)
	})

	t.Run("single-class test set marks a metric undefined", func(t *testing.T) {
		tree, _ := fittedTree(t)
		onlyNegatives, err := NewDataset([]string{"f1", "f2"}, [][]float64{{0, 0}, {1, 1}, {2, 2}}, []int{0, 0, 0})
		require.NoError(t, err)

		result, err := EvaluateModel(tree, onlyNegatives)
		require.NoError(t, err)
		assert.False(t, result.SensitivityDefined)
		assert.True(t, result.SpecificityDefined)
	})

	t.Run("schema mismatch fails", func(t *testing.T) {
		tree, _ := fittedTree(t)
		var evalErr *EvaluationError

		other, err := NewDataset([]string{"a", "b"}, [][]float64{{1, 2}}, []int{0})
		require.NoError(t, err)
		_, err = EvaluateModel(tree, other)
		require.ErrorAs(t, err, &evalErr)

		reordered, err := NewDataset([]string{"f2", "f1"}, [][]float64{{1, 2}}, []int{0})
		require.NoError(t, err)
		_, err = EvaluateModel(tree, reordered)
		require.ErrorAs(t, err, &evalErr)
	})

	t.Run("unfitted model fails", func(t *testing.T) {
		_, ds := fittedTree(t)
		var evalErr *EvaluationError
		_, err := EvaluateModel(NewDecisionTree(0.01), ds)
		require.ErrorAs(t, err, &evalErr)
	})

	t.Run("empty test set fails", func(t *testing.T) {
		tree, _ := fittedTree(t)
		empty := &Dataset{FeatureNames: tree.FeatureNames}
		var evalErr *EvaluationError
		_, err := EvaluateModel(tree, empty)
		require.ErrorAs(t, err, &evalErr)
	})
}
