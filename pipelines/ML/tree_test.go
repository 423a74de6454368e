package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableDataset returns rows cleanly split by the first feature at 5.
func separableDataset(t *testing.T) *Dataset {
	t.Helper()
	var X [][]float64
	var y []int
	for i := 0; i < 20; i++ {
		X = append(X, []float64{float64(i), float64(i % 4)})
		if i < 10 {
			y = append(y, 0)
		} else {
			y = append(y, 1)
		}
	}
	ds, err := NewDataset([]string{"f1", "f2"}, X, y)
	require.NoError(t, err)
	return ds
}

func TestDecisionTree_Fit(t *testing.T) {
	t.Run("learns a separable boundary", func(t *testing.T) {
		ds := separableDataset(t)
		tree := NewDecisionTree(0.01)
		require.NoError(t, tree.Fit(ds))

		for i, row := range ds.X {
			pred, err := tree.Predict(row)
			require.NoError(t, err)
			assert.Equal(t, ds.Y[i], pred, "row %d", i)
		}
		assert.Equal(t, []int{0, 1}, tree.Classes)
	})

	t.Run("single-class data fits to a lone leaf", func(t *testing.T) {
		ds, err := NewDataset([]string{"f1"}, [][]float64{{1}, {2}, {3}}, []int{1, 1, 1})
		require.NoError(t, err)

		tree := NewDecisionTree(0.01)
		require.NoError(t, tree.Fit(ds))
		assert.True(t, tree.Root.Leaf)
		assert.Equal(t, 1, tree.NodeCount())

		pred, err := tree.Predict([]float64{99})
		require.NoError(t, err)
		assert.Equal(t, 1, pred)
	})

	t.Run("restrictive min gain collapses the tree", func(t *testing.T) {
		ds := separableDataset(t)

		loose := NewDecisionTree(0.001)
		require.NoError(t, loose.Fit(ds))
		strict := NewDecisionTree(10)
		require.NoError(t, strict.Fit(ds))

		assert.True(t, strict.Root.Leaf)
		assert.Greater(t, loose.NodeCount(), strict.NodeCount())
	})

	t.Run("empty dataset fails", func(t *testing.T) {
		tree := NewDecisionTree(0.01)
		err := tree.Fit(&Dataset{FeatureNames: []string{"f1"}})
		var trainErr *TrainingError
		require.ErrorAs(t, err, &trainErr)
	})
}

func TestDecisionTree_Predict(t *testing.T) {
	t.Run("unfitted model fails", func(t *testing.T) {
		tree := NewDecisionTree(0.01)
		_, err := tree.Predict([]float64{1})
		assert.Error(t, err)
	})

	t.Run("wrong width fails", func(t *testing.T) {
		ds := separableDataset(t)
		tree := NewDecisionTree(0.01)
		require.NoError(t, tree.Fit(ds))
		_, err := tree.Predict([]float64{1})
		assert.Error(t, err)
	})

	t.Run("fitting is deterministic", func(t *testing.T) {
		ds := separableDataset(t)
		a := NewDecisionTree(0.01)
		require.NoError(t, a.Fit(ds))
		b := NewDecisionTree(0.01)
		require.NoError(t, b.Fit(ds))
		assert.Equal(t, a.Root, b.Root)
	})
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, entropy(map[int]int{0: 10}, 10))
	assert.InDelta(t, 1.0, entropy(map[int]int{0: 5, 1: 5}, 10), 1e-9)
	assert.Equal(t, 0.0, entropy(nil, 0))
}

func TestMidpointThresholds(t *testing.T) {
	assert.Nil(t, midpointThresholds([]float64{3, 3, 3}))
	assert.Equal(t, []float64{1.5, 2.5}, midpointThresholds([]float64{2, 1, 3, 1}))
}
