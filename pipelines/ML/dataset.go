// Package ml implements the study's modeling core: synthetic label
// vectors, reproducible train/test resampling, an entropy-based decision
// tree, a repeated cross-validation hyperparameter sweep, and binary
// classification evaluation. Every random-dependent operation takes an
// explicit seed; there is no hidden global generator state, so the three
// service pipelines stay independent however they are scheduled.
package ml

import "fmt"

// Dataset is a labeled feature matrix: one row per sample, columns in
// FeatureNames order, binary labels in Y.
type Dataset struct {
	FeatureNames []string
	X            [][]float64
	Y            []int
}

// NewDataset validates and assembles a labeled dataset.
func NewDataset(featureNames []string, X [][]float64, y []int) (*Dataset, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature matrix has %d rows but label vector has %d", len(X), len(y))
	}
	for i, row := range X {
		if len(row) != len(featureNames) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(featureNames))
		}
	}
	return &Dataset{FeatureNames: featureNames, X: X, Y: y}, nil
}

// Rows returns the number of samples in the dataset.
func (d *Dataset) Rows() int {
	return len(d.X)
}

// subset returns a new dataset holding the rows at the given indices. Row
// slices are shared, not copied; datasets are read-only after assembly.
func (d *Dataset) subset(indices []int) *Dataset {
	X := make([][]float64, len(indices))
	y := make([]int, len(indices))
	for i, idx := range indices {
		X[i] = d.X[idx]
		y[i] = d.Y[idx]
	}
	return &Dataset{FeatureNames: d.FeatureNames, X: X, Y: y}
}
